package timing

import (
	"errors"
	"testing"
	"time"

	"github.com/shadanan/codeanim/internal/keys"
)

func TestStackPushPopRestores(t *testing.T) {
	base := Policy{Tap: D(50 * time.Millisecond)}
	s := NewStack(base)
	before := s.Current()

	for n := 0; n < 5; n++ {
		for i := 0; i < n; i++ {
			s.Push(Policy{Tap: D(time.Duration(i+1) * time.Millisecond)})
		}
		for i := 0; i < n; i++ {
			s.Pop()
		}
		if !policyEqual(s.Current(), before) {
			t.Fatalf("N=%d: effective policy not restored after balanced push/pop", n)
		}
	}
}

func TestStackCurrentMergesOutermostToInnermost(t *testing.T) {
	s := NewStack(Policy{Tap: D(50 * time.Millisecond)})
	s.Push(Policy{End: D(2 * time.Second), PerKey: map[keys.Key]time.Duration{keys.KeySpace: 200 * time.Millisecond}})
	s.Push(Policy{Tap: D(10 * time.Millisecond)})

	cur := s.Current()
	if *cur.Tap != 10*time.Millisecond {
		t.Fatalf("innermost tap must win, got %v", *cur.Tap)
	}
	if *cur.End != 2*time.Second {
		t.Fatalf("middle end must survive, got %v", *cur.End)
	}
	if cur.PerKey[keys.KeySpace] != 200*time.Millisecond {
		t.Fatal("per-key entry from middle scope must survive")
	}
}

func TestWithPopsOnError(t *testing.T) {
	s := NewStack(Policy{Tap: D(50 * time.Millisecond)})
	before := s.Current()
	boom := errors.New("boom")

	err := s.With(Policy{Tap: D(time.Millisecond)}, func() error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("With must return the body's error, got %v", err)
	}
	if s.Depth() != 1 {
		t.Fatalf("scope must be popped on error, depth = %d", s.Depth())
	}
	if !policyEqual(s.Current(), before) {
		t.Fatal("effective policy not restored after failed scope")
	}
}

func TestWithPopsOnPanic(t *testing.T) {
	s := NewStack(Policy{})
	func() {
		defer func() { _ = recover() }()
		_ = s.With(Policy{Tap: D(time.Millisecond)}, func() error {
			panic("boom")
		})
	}()
	if s.Depth() != 1 {
		t.Fatalf("scope must be popped on panic, depth = %d", s.Depth())
	}
}

func TestPopBasePanics(t *testing.T) {
	s := NewStack(Policy{})
	defer func() {
		if recover() == nil {
			t.Fatal("popping the base scope must panic")
		}
	}()
	s.Pop()
}
