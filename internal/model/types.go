package model

import (
	"fmt"
	"time"

	"github.com/shadanan/codeanim/internal/keys"
)

// ActionType discriminates the scripted action variants.
type ActionType string

const (
	ActionTap   ActionType = "tap"
	ActionWrite ActionType = "write"
	ActionPaste ActionType = "paste"
	ActionPause ActionType = "pause"
)

// Action is one scripted user intent. Exactly the fields for its type are
// meaningful: Chord for tap, Text for write and paste, Duration for pause.
// Once dispatched an action is final; the queue never retries or undoes.
type Action struct {
	Type     ActionType
	Chord    keys.Chord
	Text     string
	Duration time.Duration
}

// Tap scripts one discrete, optionally chorded key event.
func Tap(c keys.Chord) Action {
	return Action{Type: ActionTap, Chord: c}
}

// Write scripts literal text typed one key event per rune.
func Write(text string) Action {
	return Action{Type: ActionWrite, Text: text}
}

// Paste scripts a single bulk insert of text. It is one event no matter
// the length, so it cannot trip per-character shell side effects.
func Paste(text string) Action {
	return Action{Type: ActionPaste, Text: text}
}

// Pause scripts a pure wait; no input is sent.
func Pause(d time.Duration) Action {
	return Action{Type: ActionPause, Duration: d}
}

func (a Action) String() string {
	switch a.Type {
	case ActionTap:
		return fmt.Sprintf("tap %s", a.Chord)
	case ActionWrite:
		return fmt.Sprintf("write %q", a.Text)
	case ActionPaste:
		return fmt.Sprintf("paste %q", a.Text)
	case ActionPause:
		return fmt.Sprintf("pause %s", a.Duration)
	default:
		return string(a.Type)
	}
}

// TargetKind selects the terminal backend a session drives.
type TargetKind string

const (
	TargetKindTmux TargetKind = "tmux"
	TargetKindPTY  TargetKind = "pty"
)

// Target identifies the terminal that receives synthetic input.
type Target struct {
	Kind TargetKind
	// Name is the tmux session name for tmux targets, or a label for
	// pty targets.
	Name string
	// Pane is the tmux pane id ("%0" style). Empty means the session's
	// active pane.
	Pane string
}

func (t Target) String() string {
	if t.Pane != "" {
		return fmt.Sprintf("%s:%s %s", t.Kind, t.Name, t.Pane)
	}
	return fmt.Sprintf("%s:%s", t.Kind, t.Name)
}
