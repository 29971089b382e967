package target

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/shadanan/codeanim/internal/config"
)

type RunResult struct {
	Output   string
	Duration time.Duration
}

type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Executor runs collaborator binaries (tmux, the recorder/exporter) with
// the configured timeout. It never retries: every command here either
// queries or mutates a live terminal, and replaying a mutation after an
// ambiguous failure could deliver input twice.
type Executor struct {
	cfg    config.Config
	runner Runner
}

func NewExecutor(cfg config.Config) *Executor {
	return &Executor{
		cfg:    cfg,
		runner: OSRunner{},
	}
}

func NewExecutorWithRunner(cfg config.Config, runner Runner) *Executor {
	e := NewExecutor(cfg)
	e.runner = runner
	return e
}

func (e *Executor) Run(ctx context.Context, command []string) (RunResult, error) {
	if len(command) == 0 {
		return RunResult{}, fmt.Errorf("empty command")
	}
	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, e.cfg.CommandTimeout)
	defer cancel()
	out, err := e.runner.Run(runCtx, command[0], command[1:]...)
	if err != nil {
		return RunResult{}, fmt.Errorf("%s: %w (output: %q)", command[0], err, string(out))
	}
	return RunResult{Output: string(out), Duration: time.Since(start)}, nil
}

func BuildTmuxCommand(bin string, args ...string) []string {
	cmd := make([]string, 0, len(args)+1)
	cmd = append(cmd, bin)
	cmd = append(cmd, args...)
	return cmd
}
