// Package export invokes the out-of-process exporter that turns a raw
// capture into the shareable artifact. The capture format is the
// exporter's concern; this package only cares that the files exist.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/target"
)

type Exporter struct {
	cfg config.Config
	ex  *target.Executor
}

func NewExporter(cfg config.Config, ex *target.Executor) *Exporter {
	return &Exporter{cfg: cfg, ex: ex}
}

// Export converts castPath into outPath. The capture must already exist:
// exporting before the recorder flushed it means the handshake was
// skipped or the recording never started.
func (e *Exporter) Export(ctx context.Context, castPath, outPath string) error {
	if _, err := os.Stat(castPath); err != nil {
		return fmt.Errorf("capture missing: %w", err)
	}
	_, err := e.ex.Run(ctx, []string{e.cfg.RecorderBin, "export", castPath, "-o", outPath})
	if err != nil {
		return fmt.Errorf("export %s: %w", castPath, err)
	}
	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("exporter produced no artifact: %w", err)
	}
	return nil
}
