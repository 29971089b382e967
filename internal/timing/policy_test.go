package timing

import (
	"testing"
	"time"

	"github.com/shadanan/codeanim/internal/keys"
)

func policyEqual(a, b Policy) bool {
	if (a.Tap == nil) != (b.Tap == nil) || (a.Tap != nil && *a.Tap != *b.Tap) {
		return false
	}
	if (a.End == nil) != (b.End == nil) || (a.End != nil && *a.End != *b.End) {
		return false
	}
	if len(a.PerKey) != len(b.PerKey) {
		return false
	}
	for k, d := range a.PerKey {
		if b.PerKey[k] != d {
			return false
		}
	}
	return true
}

func TestMergeInnerWins(t *testing.T) {
	outer := Policy{Tap: D(50 * time.Millisecond), End: D(time.Second)}
	inner := Policy{Tap: D(100 * time.Millisecond)}
	got := Merge(outer, inner)
	if *got.Tap != 100*time.Millisecond {
		t.Fatalf("inner tap must win, got %v", *got.Tap)
	}
	if *got.End != time.Second {
		t.Fatalf("unset inner end must inherit, got %v", *got.End)
	}
}

func TestMergePerKeyKeywise(t *testing.T) {
	outer := Policy{PerKey: map[keys.Key]time.Duration{
		keys.KeySpace: 200 * time.Millisecond,
		keys.KeyEnter: time.Second,
	}}
	inner := Policy{PerKey: map[keys.Key]time.Duration{
		keys.KeyEnter: 2 * time.Second,
		keys.KeyTab:   10 * time.Millisecond,
	}}
	got := Merge(outer, inner)
	if got.PerKey[keys.KeySpace] != 200*time.Millisecond {
		t.Fatal("outer-only key must survive")
	}
	if got.PerKey[keys.KeyEnter] != 2*time.Second {
		t.Fatal("inner entry must win for the same key")
	}
	if got.PerKey[keys.KeyTab] != 10*time.Millisecond {
		t.Fatal("inner-only key must survive")
	}
}

func TestMergeIdempotentAndAbsorbing(t *testing.T) {
	outer := Policy{Tap: D(50 * time.Millisecond), PerKey: map[keys.Key]time.Duration{keys.KeySpace: time.Second}}
	inner := Policy{End: D(2 * time.Second)}

	if !policyEqual(Merge(outer, outer), outer) {
		t.Fatal("merge of a policy with itself must be that policy")
	}
	once := Merge(outer, inner)
	if !policyEqual(Merge(outer, once), once) {
		t.Fatal("merge(outer, merge(outer, inner)) must equal merge(outer, inner)")
	}
}

func TestMergeDoesNotMutateArguments(t *testing.T) {
	outer := Policy{PerKey: map[keys.Key]time.Duration{keys.KeySpace: time.Second}}
	inner := Policy{PerKey: map[keys.Key]time.Duration{keys.KeySpace: 2 * time.Second}}
	_ = Merge(outer, inner)
	if outer.PerKey[keys.KeySpace] != time.Second {
		t.Fatal("merge mutated outer")
	}
}

func TestResolvePrecedence(t *testing.T) {
	p := Policy{
		Tap:    D(50 * time.Millisecond),
		End:    D(time.Second),
		PerKey: map[keys.Key]time.Duration{keys.KeySpace: 200 * time.Millisecond},
	}
	if d := p.Resolve(keys.KeySpace, PhasePerEvent); d != 200*time.Millisecond {
		t.Fatalf("per-key override must win over tap, got %v", d)
	}
	if d := p.Resolve(keys.Key('a'), PhasePerEvent); d != 50*time.Millisecond {
		t.Fatalf("absent key must fall back to tap, got %v", d)
	}
	if d := p.Resolve(keys.Key('a'), PhaseEnd); d != time.Second {
		t.Fatalf("end phase must return end, got %v", d)
	}

	empty := Policy{}
	if d := empty.Resolve(keys.Key('a'), PhasePerEvent); d != 0 {
		t.Fatalf("fully unset policy must resolve to zero, got %v", d)
	}
	if d := empty.Resolve(keys.KeyNone, PhaseEnd); d != 0 {
		t.Fatalf("unset end must resolve to zero, got %v", d)
	}
}
