// Package backend contains the terminal implementations that receive
// synthetic input. The engine talks to them only through Terminal; it
// never reaches into the target's shell or APIs.
package backend

import (
	"context"

	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
)

// Terminal is the OS-automation surface the engine consumes: activation,
// geometry, one key-event primitive and one bulk-insert primitive.
// Implementations return plain errors; the session controller and
// dispatcher wrap them into the run-level error types.
type Terminal interface {
	// Activate brings the target to the foreground, creating it if the
	// backend owns its lifecycle.
	Activate(ctx context.Context) error
	// Resize requests a window geometry in cells and pixels. Backends
	// that cannot honor the pixel part resize to cells; a geometry the
	// backend cannot apply at all is an error, never a silent no-op.
	Resize(ctx context.Context, cols, rows, widthPx, heightPx int) error
	// SendChord delivers one key event, modifiers held around the
	// symbol, as an atomic unit.
	SendChord(ctx context.Context, c keys.Chord) error
	// SendText delivers text as a single bulk insert.
	SendText(ctx context.Context, text string) error
	// Target identifies the terminal for error reporting.
	Target() model.Target
	Close() error
}
