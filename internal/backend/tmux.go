package backend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
	"github.com/shadanan/codeanim/internal/target"
	"github.com/shadanan/codeanim/internal/tmuxfmt"
)

const pasteBufferName = "codeanim"

// TmuxTerminal drives a tmux session through the tmux CLI. Taps go out
// as send-keys with tmux key names, literal runes as send-keys -l, and
// bulk inserts as a set-buffer/paste-buffer pair with bracketed paste so
// the shell sees one insertion.
type TmuxTerminal struct {
	cfg config.Config
	ex  *target.Executor
	tgt model.Target
}

func NewTmuxTerminal(cfg config.Config, ex *target.Executor, tgt model.Target) *TmuxTerminal {
	return &TmuxTerminal{cfg: cfg, ex: ex, tgt: tgt}
}

func (t *TmuxTerminal) Target() model.Target {
	return t.tgt
}

// paneRef is the -t argument: the explicit pane if configured, else the
// session (tmux then picks its active pane).
func (t *TmuxTerminal) paneRef() string {
	if t.tgt.Pane != "" {
		return t.tgt.Pane
	}
	return t.tgt.Name
}

func (t *TmuxTerminal) run(ctx context.Context, args ...string) (target.RunResult, error) {
	return t.ex.Run(ctx, target.BuildTmuxCommand(t.cfg.TmuxBin, args...))
}

// Activate ensures the session exists and selects its window. A detached
// session is created on demand; on an attached client the window is also
// brought to the front.
func (t *TmuxTerminal) Activate(ctx context.Context) error {
	if t.tgt.Name == "" {
		return fmt.Errorf("tmux target has no session name")
	}
	if _, err := t.run(ctx, "has-session", "-t", t.tgt.Name); err != nil {
		_, err = t.run(ctx, "new-session", "-d", "-s", t.tgt.Name,
			"-x", strconv.Itoa(t.cfg.Columns), "-y", strconv.Itoa(t.cfg.Rows))
		if err != nil {
			return fmt.Errorf("create session %q: %w", t.tgt.Name, err)
		}
	}
	if _, err := t.run(ctx, "select-window", "-t", t.paneRef()); err != nil {
		return fmt.Errorf("select window: %w", err)
	}
	return nil
}

// Resize applies the cell geometry and verifies it took effect. tmux has
// no pixel-level control, so widthPx/heightPx are accepted but only the
// cell grid is honored; a grid tmux refuses or clamps is reported back.
func (t *TmuxTerminal) Resize(ctx context.Context, cols, rows, _, _ int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("invalid grid %dx%d", cols, rows)
	}
	if _, err := t.run(ctx, "resize-window", "-t", t.paneRef(),
		"-x", strconv.Itoa(cols), "-y", strconv.Itoa(rows)); err != nil {
		return err
	}
	res, err := t.run(ctx, "display-message", "-p", "-t", t.paneRef(),
		tmuxfmt.Join("#{window_width}", "#{window_height}"))
	if err != nil {
		return err
	}
	parts := tmuxfmt.SplitLine(strings.TrimSpace(res.Output), 2)
	if len(parts) != 2 {
		return fmt.Errorf("unexpected geometry reply: %q", res.Output)
	}
	gotCols, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	gotRows, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return fmt.Errorf("unexpected geometry reply: %q", res.Output)
	}
	if gotCols != cols || gotRows != rows {
		return fmt.Errorf("requested %dx%d, window is %dx%d", cols, rows, gotCols, gotRows)
	}
	return nil
}

func (t *TmuxTerminal) SendChord(ctx context.Context, c keys.Chord) error {
	if c.Mods.IsEmpty() && !c.Key.IsSpecial() {
		// Literal send so tmux does not interpret the rune as a key name.
		_, err := t.run(ctx, "send-keys", "-t", t.paneRef(), "-l", "--", string(c.Key.Rune()))
		return err
	}
	name, err := tmuxKeyName(c)
	if err != nil {
		return err
	}
	_, err = t.run(ctx, "send-keys", "-t", t.paneRef(), "--", name)
	return err
}

func (t *TmuxTerminal) SendText(ctx context.Context, text string) error {
	if _, err := t.run(ctx, "set-buffer", "-b", pasteBufferName, "--", text); err != nil {
		return err
	}
	_, err := t.run(ctx, "paste-buffer", "-d", "-p", "-b", pasteBufferName, "-t", t.paneRef())
	return err
}

// Close is a no-op: the tmux session is not owned by the engine.
func (t *TmuxTerminal) Close() error {
	return nil
}

var tmuxSpecialNames = map[keys.Key]string{
	keys.KeyEnter:     "Enter",
	keys.KeyTab:       "Tab",
	keys.KeyEscape:    "Escape",
	keys.KeyBackspace: "BSpace",
	keys.KeyDelete:    "DC",
	keys.KeyUp:        "Up",
	keys.KeyDown:      "Down",
	keys.KeyLeft:      "Left",
	keys.KeyRight:     "Right",
	keys.KeyHome:      "Home",
	keys.KeyEnd:       "End",
	keys.KeyPageUp:    "PPage",
	keys.KeyPageDown:  "NPage",
	keys.KeySpace:     "Space",
}

// tmuxKeyName renders a chord in tmux send-keys notation, e.g. "C-d" or
// "M-S-Up".
func tmuxKeyName(c keys.Chord) (string, error) {
	var b strings.Builder
	if c.Mods.Has(keys.ModCtrl) {
		b.WriteString("C-")
	}
	if c.Mods.Has(keys.ModAlt) {
		b.WriteString("M-")
	}
	if c.Mods.Has(keys.ModShift) {
		b.WriteString("S-")
	}
	if name, ok := tmuxSpecialNames[c.Key]; ok {
		b.WriteString(name)
		return b.String(), nil
	}
	if c.Key.IsSpecial() {
		return "", fmt.Errorf("no tmux name for %s", c.Key)
	}
	b.WriteRune(c.Key.Rune())
	return b.String(), nil
}
