package keys

import "strings"

// Modifier represents held modifier keys as a bitmask.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModCtrl Modifier = 1 << iota

	ModAlt

	ModShift
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// IsEmpty reports whether no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// validMask is the full closed set; anything outside it is rejected at
// chord construction.
const validMask = ModCtrl | ModAlt | ModShift
