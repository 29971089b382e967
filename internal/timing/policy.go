package timing

import (
	"time"

	"github.com/shadanan/codeanim/internal/keys"
)

// Phase selects which delay of a policy applies.
type Phase int

const (
	// PhasePerEvent is the delay after each primitive key event.
	PhasePerEvent Phase = iota
	// PhaseEnd is the delay after a whole action or scope completes.
	PhaseEnd
)

// Policy is an immutable set of delay rules. A nil field is unset and
// inherits from the enclosing scope; a set field always wins over an
// inherited one.
type Policy struct {
	// Tap applies after each primitive key event.
	Tap *time.Duration
	// End applies once after the whole action completes.
	End *time.Duration
	// PerKey overrides Tap for specific key symbols.
	PerKey map[keys.Key]time.Duration
}

// D is a convenience for building policy literals.
func D(d time.Duration) *time.Duration {
	return &d
}

// Merge combines two policies field-wise: inner's value if set, else
// outer's. PerKey merges key-wise, inner entries winning per key. Merge
// never mutates its arguments and is total over any pair of policies.
func Merge(outer, inner Policy) Policy {
	out := Policy{Tap: outer.Tap, End: outer.End}
	if inner.Tap != nil {
		out.Tap = inner.Tap
	}
	if inner.End != nil {
		out.End = inner.End
	}
	if len(outer.PerKey) == 0 && len(inner.PerKey) == 0 {
		return out
	}
	out.PerKey = make(map[keys.Key]time.Duration, len(outer.PerKey)+len(inner.PerKey))
	for k, d := range outer.PerKey {
		out.PerKey[k] = d
	}
	for k, d := range inner.PerKey {
		out.PerKey[k] = d
	}
	return out
}

// Resolve returns the effective delay for a key symbol in the given
// phase. PhasePerEvent consults PerKey first, then Tap; PhaseEnd returns
// End. Unset resolves to zero.
func (p Policy) Resolve(k keys.Key, phase Phase) time.Duration {
	switch phase {
	case PhasePerEvent:
		if d, ok := p.PerKey[k]; ok {
			return d
		}
		if p.Tap != nil {
			return *p.Tap
		}
	case PhaseEnd:
		if p.End != nil {
			return *p.End
		}
	}
	return 0
}
