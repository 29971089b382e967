// Package dispatch executes scripted actions against a terminal in
// strict declaration order, pacing them by the effective timing policy.
package dispatch

import (
	"context"

	"github.com/shadanan/codeanim/internal/backend"
	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
	"github.com/shadanan/codeanim/internal/timing"
)

// Dispatcher consumes actions one at a time on the calling goroutine.
// Input must reach the shell in the exact order a human would type it,
// so there is no concurrency here: each action blocks until its dispatch
// and resolved delays complete. A delivery failure aborts the rest of
// the queue; there are no retries.
type Dispatcher struct {
	term    backend.Terminal
	stack   *timing.Stack
	sleeper Sleeper
}

func New(term backend.Terminal, stack *timing.Stack) *Dispatcher {
	return &Dispatcher{term: term, stack: stack, sleeper: timerSleeper{}}
}

func NewWithSleeper(term backend.Terminal, stack *timing.Stack, s Sleeper) *Dispatcher {
	d := New(term, stack)
	d.sleeper = s
	return d
}

// Stack exposes the delay scope stack so callers can overlay policies
// around groups of actions.
func (d *Dispatcher) Stack() *timing.Stack {
	return d.stack
}

// Run executes actions FIFO and stops at the first failure.
func (d *Dispatcher) Run(ctx context.Context, actions []model.Action) error {
	for _, a := range actions {
		if err := d.Apply(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Apply executes one action: dispatch interleaved with per-event sleeps,
// then the end-of-action sleep.
func (d *Dispatcher) Apply(ctx context.Context, a model.Action) error {
	switch a.Type {
	case model.ActionWrite:
		return d.write(ctx, a)
	case model.ActionTap:
		return d.tap(ctx, a)
	case model.ActionPaste:
		return d.paste(ctx, a)
	case model.ActionPause:
		// An explicit pause is authoritative; the scope stack is not
		// consulted.
		return d.sleeper.Sleep(ctx, a.Duration)
	default:
		return &model.DispatchError{Action: a, Target: d.term.Target(), Err: errUnknownAction}
	}
}

func (d *Dispatcher) write(ctx context.Context, a model.Action) error {
	pol := d.stack.Current()
	for _, r := range a.Text {
		if err := d.term.SendChord(ctx, keys.RuneChord(r)); err != nil {
			return &model.DispatchError{Action: a, Target: d.term.Target(), Err: err}
		}
		if err := d.sleeper.Sleep(ctx, pol.Resolve(keys.Of(r), timing.PhasePerEvent)); err != nil {
			return err
		}
	}
	return d.sleeper.Sleep(ctx, pol.Resolve(keys.KeyNone, timing.PhaseEnd))
}

func (d *Dispatcher) tap(ctx context.Context, a model.Action) error {
	pol := d.stack.Current()
	if err := d.term.SendChord(ctx, a.Chord); err != nil {
		return &model.DispatchError{Action: a, Target: d.term.Target(), Err: err}
	}
	if err := d.sleeper.Sleep(ctx, pol.Resolve(a.Chord.Key, timing.PhasePerEvent)); err != nil {
		return err
	}
	return d.sleeper.Sleep(ctx, pol.Resolve(a.Chord.Key, timing.PhaseEnd))
}

func (d *Dispatcher) paste(ctx context.Context, a model.Action) error {
	pol := d.stack.Current()
	if err := d.term.SendText(ctx, a.Text); err != nil {
		return &model.DispatchError{Action: a, Target: d.term.Target(), Err: err}
	}
	// Paste is one event; only the end delay applies.
	return d.sleeper.Sleep(ctx, pol.Resolve(keys.KeyNone, timing.PhaseEnd))
}
