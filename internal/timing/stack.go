package timing

// Stack is a nest of policy overlays. The outermost entry holds the
// program-level defaults; each opened scope pushes an overlay whose set
// fields shadow the levels beneath it.
//
// A Stack belongs to a single driving goroutine. Sessions that run in
// parallel must each own their own Stack.
type Stack struct {
	scopes []Policy
}

// NewStack returns a stack with base as its outermost scope.
func NewStack(base Policy) *Stack {
	return &Stack{scopes: []Policy{base}}
}

// Push opens a scope with the given overlay.
func (s *Stack) Push(p Policy) {
	s.scopes = append(s.scopes, p)
}

// Pop closes the innermost scope. Popping the base scope is caller
// misuse and panics.
func (s *Stack) Pop() {
	if len(s.scopes) <= 1 {
		panic("timing: pop of base scope")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Current merges the full stack outermost to innermost and returns the
// effective policy. Depth is expected to stay small, so the merge is
// recomputed per call.
func (s *Stack) Current() Policy {
	cur := Policy{}
	for _, p := range s.scopes {
		cur = Merge(cur, p)
	}
	return cur
}

// Depth returns the number of open scopes including the base.
func (s *Stack) Depth() int {
	return len(s.scopes)
}

// With runs fn inside a scope overlaying p. The scope is popped on every
// exit path, including error returns and panics, so callers never
// balance Push/Pop by hand.
func (s *Stack) With(p Policy, fn func() error) error {
	s.Push(p)
	defer s.Pop()
	return fn()
}
