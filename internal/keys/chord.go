package keys

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKey      = errors.New("unknown key symbol")
	ErrUnknownModifier = errors.New("unknown modifier")
)

// Chord is one discrete key event: a key symbol plus the modifiers held
// with it. Chords are validated when built, so a dispatcher never sees a
// symbol or modifier outside the closed sets.
type Chord struct {
	Key  Key
	Mods Modifier
}

// NewChord validates and builds a chord.
func NewChord(k Key, mods Modifier) (Chord, error) {
	if k == KeyNone {
		return Chord{}, ErrUnknownKey
	}
	if mods&^validMask != 0 {
		return Chord{}, fmt.Errorf("%w: 0x%x", ErrUnknownModifier, uint8(mods))
	}
	return Chord{Key: k, Mods: mods}, nil
}

// MustChord is NewChord for statically-known chords; it panics on an
// invalid symbol or modifier.
func MustChord(k Key, mods Modifier) Chord {
	c, err := NewChord(k, mods)
	if err != nil {
		panic(err)
	}
	return c
}

// RuneChord builds an unmodified chord for a single text rune.
func RuneChord(r rune) Chord {
	return Chord{Key: Of(r)}
}

func (c Chord) String() string {
	if c.Mods.IsEmpty() {
		return c.Key.String()
	}
	return c.Mods.String() + "+" + c.Key.String()
}
