package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/target"
)

type fakeRunner struct {
	calls  [][]string
	onRun  func()
	runErr error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.onRun != nil {
		f.onRun()
	}
	return nil, f.runErr
}

func TestExportInvokesExporter(t *testing.T) {
	dir := t.TempDir()
	cast := filepath.Join(dir, "demo.cast")
	out := filepath.Join(dir, "demo.svg")
	if err := os.WriteFile(cast, []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed cast: %v", err)
	}
	r := &fakeRunner{onRun: func() {
		if err := os.WriteFile(out, []byte("<svg/>"), 0o644); err != nil {
			t.Fatalf("write artifact: %v", err)
		}
	}}
	cfg := config.DefaultConfig()
	e := NewExporter(cfg, target.NewExecutorWithRunner(cfg, r))

	if err := e.Export(context.Background(), cast, out); err != nil {
		t.Fatalf("export: %v", err)
	}
	got := strings.Join(r.calls[0], " ")
	want := "termsvg export " + cast + " -o " + out
	if got != want {
		t.Fatalf("argv = %q, want %q", got, want)
	}
}

func TestExportRequiresCapture(t *testing.T) {
	cfg := config.DefaultConfig()
	e := NewExporter(cfg, target.NewExecutorWithRunner(cfg, &fakeRunner{}))
	err := e.Export(context.Background(), filepath.Join(t.TempDir(), "missing.cast"), "out.svg")
	if err == nil || !strings.Contains(err.Error(), "capture missing") {
		t.Fatalf("expected capture-missing error, got %v", err)
	}
}

func TestExportRequiresArtifact(t *testing.T) {
	dir := t.TempDir()
	cast := filepath.Join(dir, "demo.cast")
	if err := os.WriteFile(cast, []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed cast: %v", err)
	}
	cfg := config.DefaultConfig()
	e := NewExporter(cfg, target.NewExecutorWithRunner(cfg, &fakeRunner{}))
	err := e.Export(context.Background(), cast, filepath.Join(dir, "never-written.svg"))
	if err == nil || !strings.Contains(err.Error(), "no artifact") {
		t.Fatalf("expected no-artifact error, got %v", err)
	}
}
