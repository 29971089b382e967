// Package demo holds the scripted mediar walkthrough: fixture setup,
// the action script, the recorder handshake, and the export step.
package demo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shadanan/codeanim/internal/backend"
	"github.com/shadanan/codeanim/internal/catalog"
	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/dispatch"
	"github.com/shadanan/codeanim/internal/export"
	"github.com/shadanan/codeanim/internal/fixtures"
	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
	"github.com/shadanan/codeanim/internal/session"
	"github.com/shadanan/codeanim/internal/target"
	"github.com/shadanan/codeanim/internal/timing"
)

const castName = "demo.cast"

type Options struct {
	// Dir is the working directory the demo is recorded in; the media
	// tree and the capture land here.
	Dir string
	// OutPath is the exported artifact.
	OutPath string
	// Target selects the terminal backend.
	Target model.Target
	// Store, if set, receives the completed capture's catalog row.
	Store *catalog.Store
}

// Script is the recorded portion of the walkthrough in declaration
// order: show the tree, run mediar, answer its prompts with paced
// enters, show the result, hold, then exit the recorded shell.
func Script() []model.Action {
	enter := model.Tap(keys.MustChord(keys.KeyEnter, keys.ModNone))
	return []model.Action{
		model.Write("tree"),
		enter,
		model.Pause(5 * time.Second),
		model.Write("mediar link source/show target/"),
		enter,
		model.Pause(1 * time.Second),
		enter,
		model.Pause(1 * time.Second),
		enter,
		model.Pause(1 * time.Second),
		enter,
		model.Pause(1 * time.Second),
		enter,
		model.Pause(5 * time.Second),
		model.Write("tree"),
		enter,
		model.Pause(10 * time.Second),
		model.Tap(session.StopChord),
	}
}

// Run records the full demo and exports it.
func Run(ctx context.Context, cfg config.Config, opts Options) (err error) {
	if err := fixtures.BuildMediaTree(opts.Dir); err != nil {
		return err
	}
	zshHome, err := fixtures.NewZshHome("")
	if err != nil {
		return err
	}
	defer os.RemoveAll(zshHome)

	ex := target.NewExecutor(cfg)
	term, err := newTerminal(cfg, opts.Target)
	if err != nil {
		return err
	}
	stack := timing.NewStack(timing.Policy{})
	disp := dispatch.New(term, stack)
	ctrl := session.NewController(cfg, term, disp)
	defer func() {
		if closeErr := ctrl.Close(context.WithoutCancel(ctx)); err == nil {
			err = closeErr
		}
	}()

	if err := ctrl.Activate(ctx); err != nil {
		return err
	}
	if err := ctrl.Resize(ctx); err != nil {
		return err
	}

	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return fmt.Errorf("resolve demo dir: %w", err)
	}
	setup := []model.Action{
		model.Paste("cd " + absDir),
		model.Tap(keys.MustChord(keys.KeyEnter, keys.ModNone)),
	}
	if err := ctrl.Play(ctx, setup); err != nil {
		return err
	}

	startedAt := time.Now()
	recCmd := fmt.Sprintf("ZDOTDIR=%s %s rec %s", zshHome, cfg.RecorderBin, castName)
	handle, err := ctrl.RecordStart(ctx, recCmd)
	if err != nil {
		return err
	}

	script := Script()
	err = stack.With(timing.Policy{Tap: timing.D(cfg.TapDelay), End: timing.D(cfg.EndDelay)}, func() error {
		return ctrl.Play(ctx, script)
	})
	if err != nil {
		return err
	}
	if _, err := ctrl.RecordStop(ctx); err != nil {
		return err
	}

	castPath := filepath.Join(absDir, castName)
	exporter := export.NewExporter(cfg, ex)
	if err := exporter.Export(ctx, castPath, opts.OutPath); err != nil {
		return err
	}

	if opts.Store != nil {
		row := catalog.Capture{
			Handle:       handle,
			Target:       opts.Target.String(),
			CastPath:     castPath,
			ArtifactPath: opts.OutPath,
			StartedAt:    startedAt,
			StoppedAt:    time.Now(),
			ActionCount:  len(script),
		}
		if err := opts.Store.InsertCapture(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func newTerminal(cfg config.Config, tgt model.Target) (backend.Terminal, error) {
	switch tgt.Kind {
	case model.TargetKindTmux:
		return backend.NewTmuxTerminal(cfg, target.NewExecutor(cfg), tgt), nil
	case model.TargetKindPTY:
		return backend.NewPTYTerminal(cfg, tgt, nil), nil
	default:
		return nil, fmt.Errorf("unsupported target kind: %s", tgt.Kind)
	}
}
