package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shadanan/codeanim/internal/cli"
	"github.com/shadanan/codeanim/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.DefaultConfig()
	r := cli.NewRunner(cfg, os.Stdout, os.Stderr)
	os.Exit(r.Run(ctx, os.Args[1:]))
}
