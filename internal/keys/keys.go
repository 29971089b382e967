package keys

import (
	"fmt"
	"strings"
	"unicode"
)

// Key identifies a key symbol. Printable keys are represented by their own
// rune value; special keys occupy the range above the Unicode code space so
// the two can never collide.
type Key rune

const (
	KeyNone Key = 0

	KeySpace Key = ' '
)

const (
	KeyEnter Key = 0x110000 + iota
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Of returns the Key symbol for a rune typed as part of literal text.
// Control characters map to their special key so per-key timing rules
// keyed on KeyEnter or KeyTab also match embedded newlines and tabs.
func Of(r rune) Key {
	switch r {
	case '\n', '\r':
		return KeyEnter
	case '\t':
		return KeyTab
	default:
		return Key(r)
	}
}

// IsSpecial reports whether k is a non-printable key symbol.
func (k Key) IsSpecial() bool {
	return k > 0x10FFFF
}

// Rune returns the printable rune for a non-special key, or 0.
func (k Key) Rune() rune {
	if k.IsSpecial() || k == KeyNone {
		return 0
	}
	return rune(k)
}

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyEscape:
		return "Escape"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeySpace:
		return "Space"
	}
	if k.IsSpecial() {
		return fmt.Sprintf("Key(%d)", rune(k))
	}
	return string(rune(k))
}

var keyNames = map[string]Key{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"space":     KeySpace,
}

// FromName returns the Key for a name like "enter" or "pageup"
// (case-insensitive). Single printable characters name themselves.
// Returns KeyNone for anything else.
func FromName(name string) Key {
	name = strings.TrimSpace(name)
	if k, ok := keyNames[strings.ToLower(name)]; ok {
		return k
	}
	runes := []rune(name)
	if len(runes) == 1 && unicode.IsPrint(runes[0]) {
		return Key(runes[0])
	}
	return KeyNone
}
