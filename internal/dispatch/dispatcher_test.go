package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
	"github.com/shadanan/codeanim/internal/timing"
)

// fakeTerminal and fakeSleeper share one trace so tests can assert the
// exact interleaving of dispatches and sleeps.
type trace struct {
	events []string
}

type fakeTerminal struct {
	tr   *trace
	fail func(c keys.Chord) error
}

func (f *fakeTerminal) Activate(context.Context) error { return nil }

func (f *fakeTerminal) Resize(context.Context, int, int, int, int) error { return nil }

func (f *fakeTerminal) SendChord(_ context.Context, c keys.Chord) error {
	if f.fail != nil {
		if err := f.fail(c); err != nil {
			return err
		}
	}
	f.tr.events = append(f.tr.events, "chord "+c.String())
	return nil
}

func (f *fakeTerminal) SendText(_ context.Context, text string) error {
	f.tr.events = append(f.tr.events, fmt.Sprintf("text %q", text))
	return nil
}

func (f *fakeTerminal) Target() model.Target {
	return model.Target{Kind: model.TargetKindTmux, Name: "test"}
}

func (f *fakeTerminal) Close() error { return nil }

type fakeSleeper struct {
	tr *trace
}

func (f *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	f.tr.events = append(f.tr.events, "sleep "+d.String())
	return nil
}

func newTestDispatcher(base timing.Policy) (*Dispatcher, *fakeTerminal, *trace) {
	tr := &trace{}
	term := &fakeTerminal{tr: tr}
	d := NewWithSleeper(term, timing.NewStack(base), &fakeSleeper{tr: tr})
	return d, term, tr
}

func TestWriteInterleavesDispatchAndSleeps(t *testing.T) {
	d, _, tr := newTestDispatcher(timing.Policy{
		Tap: timing.D(100 * time.Millisecond),
		End: timing.D(time.Second),
	})

	if err := d.Apply(context.Background(), model.Write("ab")); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []string{
		"chord a",
		"sleep 100ms",
		"chord b",
		"sleep 100ms",
		"sleep 1s",
	}
	assertTrace(t, tr, want)
}

func TestWritePerKeyOverrideScenario(t *testing.T) {
	// Base scope tap=50ms; pushed scope adds end=2s and a 200ms space
	// override. "a b" must pace as 50ms, 200ms, 50ms, then 2s.
	d, _, tr := newTestDispatcher(timing.Policy{Tap: timing.D(50 * time.Millisecond)})
	err := d.Stack().With(timing.Policy{
		End:    timing.D(2 * time.Second),
		PerKey: map[keys.Key]time.Duration{keys.KeySpace: 200 * time.Millisecond},
	}, func() error {
		return d.Apply(context.Background(), model.Write("a b"))
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []string{
		"chord a",
		"sleep 50ms",
		"chord Space",
		"sleep 200ms",
		"chord b",
		"sleep 50ms",
		"sleep 2s",
	}
	assertTrace(t, tr, want)
}

func TestPasteIsOneDispatch(t *testing.T) {
	d, _, tr := newTestDispatcher(timing.Policy{
		Tap: timing.D(100 * time.Millisecond),
		End: timing.D(time.Second),
	})
	if err := d.Apply(context.Background(), model.Paste("hello")); err != nil {
		t.Fatalf("paste: %v", err)
	}
	want := []string{
		`text "hello"`,
		"sleep 1s",
	}
	assertTrace(t, tr, want)
}

func TestPauseIgnoresScopeStack(t *testing.T) {
	d, _, tr := newTestDispatcher(timing.Policy{
		Tap: timing.D(100 * time.Millisecond),
		End: timing.D(time.Second),
	})
	if err := d.Apply(context.Background(), model.Pause(5*time.Second)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	assertTrace(t, tr, []string{"sleep 5s"})
}

func TestTapSleepsPerEventThenEnd(t *testing.T) {
	d, _, tr := newTestDispatcher(timing.Policy{
		Tap: timing.D(100 * time.Millisecond),
		End: timing.D(time.Second),
	})
	if err := d.Apply(context.Background(), model.Tap(keys.MustChord(keys.KeyEnter, keys.ModNone))); err != nil {
		t.Fatalf("tap: %v", err)
	}
	want := []string{
		"chord Enter",
		"sleep 100ms",
		"sleep 1s",
	}
	assertTrace(t, tr, want)
}

func TestRunFailsFastAndStops(t *testing.T) {
	d, term, tr := newTestDispatcher(timing.Policy{})
	boom := errors.New("window lost")
	var sent int
	term.fail = func(keys.Chord) error {
		sent++
		if sent == 3 {
			return boom
		}
		return nil
	}

	enter := model.Tap(keys.MustChord(keys.KeyEnter, keys.ModNone))
	actions := []model.Action{enter, enter, enter, enter, enter}
	err := d.Run(context.Background(), actions)

	var de *model.DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("DispatchError must wrap the cause, got %v", err)
	}
	if de.Action.Type != model.ActionTap {
		t.Fatalf("DispatchError must identify the action, got %s", de.Action)
	}
	if sent != 3 {
		t.Fatalf("actions 4 and 5 must never dispatch, sent = %d", sent)
	}
	// Two successful taps, each chord + two sleeps.
	assertTrace(t, tr, []string{
		"chord Enter", "sleep 0s", "sleep 0s",
		"chord Enter", "sleep 0s", "sleep 0s",
	})
}

func TestSleepCancellationAbandonsQueue(t *testing.T) {
	tr := &trace{}
	term := &fakeTerminal{tr: tr}
	d := New(term, timing.NewStack(timing.Policy{Tap: timing.D(time.Hour)}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Run(ctx, []model.Action{model.Write("ab"), model.Write("cd")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// The first chord goes out before the canceled sleep is observed;
	// nothing further does.
	assertTrace(t, tr, []string{"chord a"})
}

func assertTrace(t *testing.T, tr *trace, want []string) {
	t.Helper()
	if len(tr.events) != len(want) {
		t.Fatalf("trace mismatch:\n got  %#v\n want %#v", tr.events, want)
	}
	for i := range want {
		if tr.events[i] != want[i] {
			t.Fatalf("trace mismatch at %d:\n got  %#v\n want %#v", i, tr.events, want)
		}
	}
}
