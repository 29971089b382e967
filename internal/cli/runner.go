package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shadanan/codeanim/internal/catalog"
	"github.com/shadanan/codeanim/internal/config"
	"github.com/shadanan/codeanim/internal/demo"
	"github.com/shadanan/codeanim/internal/export"
	"github.com/shadanan/codeanim/internal/integration"
	"github.com/shadanan/codeanim/internal/model"
	"github.com/shadanan/codeanim/internal/target"
)

type Runner struct {
	cfg    config.Config
	out    io.Writer
	errOut io.Writer
}

func NewRunner(cfg config.Config, out, errOut io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Runner{cfg: cfg, out: out, errOut: errOut}
}

func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.printUsage()
		return 2
	}
	switch args[0] {
	case "run":
		return r.runDemo(ctx, args[1:])
	case "export":
		return r.runExport(ctx, args[1:])
	case "captures":
		return r.runCaptures(ctx, args[1:])
	case "doctor":
		return r.runDoctor(args[1:])
	case "help", "-h", "--help":
		r.printUsage()
		return 0
	default:
		_, _ = fmt.Fprintf(r.errOut, "error: unknown command %q\n", args[0])
		r.printUsage()
		return 2
	}
}

func (r *Runner) runDemo(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	dir := fs.String("dir", "demo", "working directory for fixtures and the capture")
	out := fs.String("out", "demo.svg", "exported artifact path")
	kind := fs.String("backend", "tmux", "terminal backend: tmux or pty")
	sessionName := fs.String("session", "codeanim", "tmux session name")
	pane := fs.String("pane", "", "tmux pane id (default: active pane)")
	tap := fs.Duration("tap", r.cfg.TapDelay, "delay after each key event")
	end := fs.Duration("end", r.cfg.EndDelay, "delay after each action")
	noCatalog := fs.Bool("no-catalog", false, "skip recording the capture in the catalog")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := r.cfg
	cfg.TapDelay = *tap
	cfg.EndDelay = *end

	tgt := model.Target{Kind: model.TargetKind(*kind), Name: *sessionName, Pane: *pane}
	switch tgt.Kind {
	case model.TargetKindTmux, model.TargetKindPTY:
	default:
		_, _ = fmt.Fprintf(r.errOut, "error: unknown backend %q\n", *kind)
		return 2
	}

	opts := demo.Options{Dir: *dir, OutPath: *out, Target: tgt}
	if !*noCatalog {
		store, err := catalog.Open(ctx, cfg.CatalogPath)
		if err != nil {
			_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
			return 1
		}
		defer store.Close() //nolint:errcheck
		if err := catalog.ApplyMigrations(ctx, store.DB()); err != nil {
			_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
			return 1
		}
		opts.Store = store
	}

	if err := demo.Run(ctx, cfg, opts); err != nil {
		_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(r.out, "exported %s\n", *out)
	return 0
}

func (r *Runner) runExport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	out := fs.String("o", "demo.svg", "artifact output path")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprintln(r.errOut, "usage: codeanim export [-o out.svg] <capture.cast>")
		return 2
	}
	exporter := export.NewExporter(r.cfg, target.NewExecutor(r.cfg))
	if err := exporter.Export(ctx, fs.Arg(0), *out); err != nil {
		_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(r.out, "exported %s\n", *out)
	return 0
}

func (r *Runner) runCaptures(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("captures", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	store, err := catalog.Open(ctx, r.cfg.CatalogPath)
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
		return 1
	}
	defer store.Close() //nolint:errcheck
	if err := catalog.ApplyMigrations(ctx, store.DB()); err != nil {
		_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
		return 1
	}
	caps, err := store.ListCaptures(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
		return 1
	}
	if *asJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(caps); err != nil {
			_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
			return 1
		}
		return 0
	}
	if len(caps) == 0 {
		_, _ = fmt.Fprintln(r.out, "no captures")
		return 0
	}
	for _, c := range caps {
		_, _ = fmt.Fprintf(r.out, "%s  %s  %s  %d actions  %s\n",
			c.StartedAt.Local().Format(time.DateTime), c.Handle, c.Target, c.ActionCount, c.ArtifactPath)
	}
	return 0
}

func (r *Runner) runDoctor(args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	res := integration.Doctor(r.cfg)
	if *asJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			_, _ = fmt.Fprintf(r.errOut, "error: %v\n", err)
			return 1
		}
	} else {
		for _, c := range res.Checks {
			_, _ = fmt.Fprintf(r.out, "%-12s %-4s %s\n", c.Name, c.Status, c.Message)
		}
	}
	if !res.OK {
		return 1
	}
	return 0
}

func (r *Runner) printUsage() {
	_, _ = fmt.Fprint(r.errOut, `usage: codeanim <command> [flags]

commands:
  run       record the mediar demo and export it
  export    export an existing capture to an artifact
  captures  list recorded captures
  doctor    check the host environment
`)
}
