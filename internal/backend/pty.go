package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"unicode"

	"github.com/creack/pty"

	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
)

// PTYTerminal runs the configured shell on a pseudo-terminal it owns and
// writes synthetic input to the master side. Useful for headless runs
// where no tmux server or window system is available.
type PTYTerminal struct {
	cfg config.Config
	tgt model.Target
	env []string

	cmd  *exec.Cmd
	ptmx *os.File

	outputMu sync.RWMutex
	output   strings.Builder
	closed   bool
}

func NewPTYTerminal(cfg config.Config, tgt model.Target, env []string) *PTYTerminal {
	return &PTYTerminal{cfg: cfg, tgt: tgt, env: env}
}

func (t *PTYTerminal) Target() model.Target {
	return t.tgt
}

// Activate starts the shell on a fresh pty. Calling it again while the
// shell is still running is a no-op; a shell that already exited is an
// activation failure, not a restart.
func (t *PTYTerminal) Activate(_ context.Context) error {
	if t.closed {
		return fmt.Errorf("terminal is closed")
	}
	if t.cmd != nil {
		if t.cmd.ProcessState != nil {
			return fmt.Errorf("shell %s exited", t.cfg.Shell)
		}
		return nil
	}
	cmd := exec.Command(t.cfg.Shell, "-i")
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, t.env...)
	ws := &pty.Winsize{
		Rows: uint16(t.cfg.Rows),
		Cols: uint16(t.cfg.Columns),
		X:    uint16(t.cfg.WidthPx),
		Y:    uint16(t.cfg.HeightPx),
	}
	ptmx, err := pty.StartWithSize(cmd, ws)
	if err != nil {
		return fmt.Errorf("start shell %s: %w", t.cfg.Shell, err)
	}
	t.cmd = cmd
	t.ptmx = ptmx
	go t.drain()
	return nil
}

// drain keeps reading the master side so the shell never blocks on a
// full pty buffer, and keeps a transcript for debugging.
func (t *PTYTerminal) drain() {
	buf := make([]byte, 4096)
	for {
		n, err := t.ptmx.Read(buf)
		if n > 0 {
			t.outputMu.Lock()
			t.output.Write(buf[:n])
			t.outputMu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Output returns the transcript captured from the shell so far.
func (t *PTYTerminal) Output() string {
	t.outputMu.RLock()
	defer t.outputMu.RUnlock()
	return t.output.String()
}

func (t *PTYTerminal) Resize(_ context.Context, cols, rows, widthPx, heightPx int) error {
	if t.ptmx == nil {
		return fmt.Errorf("terminal not activated")
	}
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("invalid grid %dx%d", cols, rows)
	}
	ws := &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
		X:    uint16(widthPx),
		Y:    uint16(heightPx),
	}
	if err := pty.Setsize(t.ptmx, ws); err != nil {
		return fmt.Errorf("setsize: %w", err)
	}
	return nil
}

func (t *PTYTerminal) SendChord(_ context.Context, c keys.Chord) error {
	if t.ptmx == nil {
		return fmt.Errorf("terminal not activated")
	}
	seq, err := encodeChord(c)
	if err != nil {
		return err
	}
	if _, err := t.ptmx.Write(seq); err != nil {
		return fmt.Errorf("write chord %s: %w", c, err)
	}
	return nil
}

// SendText writes the text wrapped in bracketed paste markers so the
// line editor treats it as one insertion.
func (t *PTYTerminal) SendText(_ context.Context, text string) error {
	if t.ptmx == nil {
		return fmt.Errorf("terminal not activated")
	}
	if _, err := t.ptmx.WriteString("\x1b[200~" + text + "\x1b[201~"); err != nil {
		return fmt.Errorf("write paste: %w", err)
	}
	return nil
}

func (t *PTYTerminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	var errs []error
	if t.cmd != nil && t.cmd.Process != nil && t.cmd.ProcessState == nil {
		if err := t.cmd.Process.Kill(); err != nil {
			errs = append(errs, fmt.Errorf("kill shell: %w", err))
		}
		_ = t.cmd.Wait()
	}
	if t.ptmx != nil {
		if err := t.ptmx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pty: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close pty terminal: %v", errs)
	}
	return nil
}

var ptySpecialSeqs = map[keys.Key]string{
	keys.KeyEnter:     "\r",
	keys.KeyTab:       "\t",
	keys.KeyEscape:    "\x1b",
	keys.KeyBackspace: "\x7f",
	keys.KeyDelete:    "\x1b[3~",
	keys.KeyUp:        "\x1b[A",
	keys.KeyDown:      "\x1b[B",
	keys.KeyRight:     "\x1b[C",
	keys.KeyLeft:      "\x1b[D",
	keys.KeyHome:      "\x1b[H",
	keys.KeyEnd:       "\x1b[F",
	keys.KeyPageUp:    "\x1b[5~",
	keys.KeyPageDown:  "\x1b[6~",
	keys.KeySpace:     " ",
}

// encodeChord renders a chord as the byte sequence a terminal emulator
// would transmit. Ctrl maps letters into the C0 range, Alt prefixes ESC.
// Shift chords have no portable encoding on a raw pty and are rejected.
func encodeChord(c keys.Chord) ([]byte, error) {
	if c.Mods.Has(keys.ModShift) {
		return nil, fmt.Errorf("shift chords are not encodable on a pty (%s)", c)
	}
	var base string
	if seq, ok := ptySpecialSeqs[c.Key]; ok {
		base = seq
	} else if !c.Key.IsSpecial() {
		base = string(c.Key.Rune())
	} else {
		return nil, fmt.Errorf("no pty sequence for %s", c.Key)
	}
	if c.Mods.Has(keys.ModCtrl) {
		r := unicode.ToLower(rune(base[0]))
		if len(base) != 1 || r < 'a' || r > 'z' {
			return nil, fmt.Errorf("ctrl chord needs a letter, got %s", c)
		}
		base = string(rune(byte(r) & 0x1f))
	}
	if c.Mods.Has(keys.ModAlt) {
		base = "\x1b" + base
	}
	return []byte(base), nil
}
