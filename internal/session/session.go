// Package session orchestrates the external terminal for one scripted
// run: activation, geometry, and the start/stop handshake with the
// recorder.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shadanan/codeanim/internal/backend"
	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/dispatch"
	"github.com/shadanan/codeanim/internal/keys"
	"github.com/shadanan/codeanim/internal/model"
)

// RecordState is the recorder handshake state.
type RecordState string

const (
	StateIdle      RecordState = "idle"
	StateRecording RecordState = "recording"
	StateStopped   RecordState = "stopped"
)

// StopChord is the detach chord that ends a recording. The recorder is
// presumed active from the moment its start command is submitted until
// this chord is sent; there is no stronger acknowledgment.
var StopChord = keys.MustChord(keys.Key('d'), keys.ModCtrl)

// Controller binds one terminal target to at most one in-progress
// recording. Exactly one recording exists per controller per run.
type Controller struct {
	cfg  config.Config
	term backend.Terminal
	disp *dispatch.Dispatcher

	state  RecordState
	handle string
}

func NewController(cfg config.Config, term backend.Terminal, disp *dispatch.Dispatcher) *Controller {
	return &Controller{cfg: cfg, term: term, disp: disp, state: StateIdle}
}

func (c *Controller) State() RecordState {
	return c.state
}

// Handle returns the recording handle, empty before RecordStart.
func (c *Controller) Handle() string {
	return c.handle
}

// Activate brings the target application to foreground focus. Failure is
// fatal to the run.
func (c *Controller) Activate(ctx context.Context) error {
	if err := c.term.Activate(ctx); err != nil {
		return &model.ActivationError{Target: c.term.Target(), Err: err}
	}
	return nil
}

// Resize requests the configured window geometry.
func (c *Controller) Resize(ctx context.Context) error {
	err := c.term.Resize(ctx, c.cfg.Columns, c.cfg.Rows, c.cfg.WidthPx, c.cfg.HeightPx)
	if err != nil {
		return &model.ResizeError{Target: c.term.Target(), Err: err}
	}
	return nil
}

// RecordStart submits the recorder command line through the session
// (bulk insert plus enter) and returns the handle for the new capture.
// Starting while already recording is caller misuse.
func (c *Controller) RecordStart(ctx context.Context, command string) (string, error) {
	if c.state == StateRecording {
		return "", model.ErrAlreadyRecording
	}
	err := c.disp.Run(ctx, []model.Action{
		model.Paste(command),
		model.Tap(keys.MustChord(keys.KeyEnter, keys.ModNone)),
	})
	if err != nil {
		return "", fmt.Errorf("submit recorder command: %w", err)
	}
	c.state = StateRecording
	c.handle = uuid.NewString()
	return c.handle, nil
}

// RecordStop sends the detach chord and transitions to Stopped. Stopping
// an already stopped recording succeeds again with the same handle;
// stopping before any recording started is caller misuse.
func (c *Controller) RecordStop(ctx context.Context) (string, error) {
	switch c.state {
	case StateIdle:
		return "", model.ErrNotRecording
	case StateStopped:
		return c.handle, nil
	}
	if err := c.disp.Apply(ctx, model.Tap(StopChord)); err != nil {
		return "", fmt.Errorf("send stop chord: %w", err)
	}
	c.state = StateStopped
	return c.handle, nil
}

// Play is the queue-execution entry point. On any failure, including
// cancellation of an in-flight sleep, it attempts RecordStop before
// unwinding so a capture is never left dangling.
func (c *Controller) Play(ctx context.Context, actions []model.Action) error {
	err := c.disp.Run(ctx, actions)
	if err != nil && c.state == StateRecording {
		// The stop chord still has to reach the terminal even when ctx
		// is already canceled.
		if _, stopErr := c.RecordStop(context.WithoutCancel(ctx)); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}
	return err
}

// Close tears the session down, stopping a still-active recording first.
func (c *Controller) Close(ctx context.Context) error {
	var err error
	if c.state == StateRecording {
		_, err = c.RecordStop(ctx)
	}
	return errors.Join(err, c.term.Close())
}
