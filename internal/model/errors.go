package model

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRecording is returned by recordStart while a recording
	// is in progress.
	ErrAlreadyRecording = errors.New("recording already in progress")
	// ErrNotRecording is returned by recordStop before any recording
	// was started.
	ErrNotRecording = errors.New("no recording in progress")
)

// ActivationError means the target application could not be found or
// brought to focus. Fatal to the run.
type ActivationError struct {
	Target Target
	Err    error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("activate %s: %v", e.Target, e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }

// ResizeError means a requested window geometry was refused. Resize is
// best-effort on some platforms, but a refusal is reported loudly so
// callers can detect environment mismatches instead of recording at the
// wrong size.
type ResizeError struct {
	Target Target
	Err    error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("resize %s: %v", e.Target, e.Err)
}

func (e *ResizeError) Unwrap() error { return e.Err }

// DispatchError means a synthetic input event was not delivered. It
// aborts the remainder of the queue: a partial keystroke sequence into a
// shell is worse than stopping early, and retrying into a possibly-wrong
// window is unsafe, so the dispatcher never retries.
type DispatchError struct {
	Action Action
	Target Target
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s to %s: %v", e.Action, e.Target, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
