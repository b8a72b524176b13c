package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/corkboard/internal/app"
	"github.com/thenoetrevino/corkboard/internal/cli/serve"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logs, err := logging.Init(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = logs.Close()
	}()

	a, err := app.OpenConfig(ctx, cfg, app.WithLogger(slog.Default()))
	if err != nil {
		slog.Error("failed to open store", "error", err, "path", cfg.DBPath())
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// Blocks until shutdown
	if err := serve.Run(ctx, a, cfg.Socket(), slog.Default()); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}
