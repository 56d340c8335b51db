package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"engine2d/internal/config"
	"engine2d/internal/injector"
)

func main() {
	// Run next to the binary for deployed builds, but not under "go run",
	// which builds into a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			_ = os.Chdir(execDir)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, cleanup, err := injector.InitializeGame(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	start := cfg.Game.StartLevel
	if len(os.Args) > 1 {
		start = os.Args[1]
	}
	if err := g.Start(start); err != nil {
		return fmt.Errorf("start level %q: %w", start, err)
	}

	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
