package demo

import (
	"testing"

	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/model"
	"github.com/shadanan/codeanim/internal/session"
)

func TestScriptShape(t *testing.T) {
	script := Script()
	if len(script) == 0 {
		t.Fatal("empty script")
	}
	first := script[0]
	if first.Type != model.ActionWrite || first.Text != "tree" {
		t.Fatalf("script must open by typing tree, got %s", first)
	}
	last := script[len(script)-1]
	if last.Type != model.ActionTap || last.Chord != session.StopChord {
		t.Fatalf("script must end by exiting the recorded shell, got %s", last)
	}

	var pastes int
	for _, a := range script {
		if a.Type == model.ActionPaste {
			pastes++
		}
	}
	if pastes != 0 {
		t.Fatalf("the recorded script types everything, found %d pastes", pastes)
	}
}

func TestScriptRunsMediar(t *testing.T) {
	var found bool
	for _, a := range Script() {
		if a.Type == model.ActionWrite && a.Text == "mediar link source/show target/" {
			found = true
		}
	}
	if !found {
		t.Fatal("script must run mediar link")
	}
}

func TestNewTerminalRejectsUnknownKind(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := newTerminal(cfg, model.Target{Kind: "screen"}); err == nil {
		t.Fatal("unknown target kind must be rejected")
	}
}
