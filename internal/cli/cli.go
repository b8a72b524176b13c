package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/corkboard/internal/app"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App       // Application container with the command surface
	Config *config.Config // nil when the app was injected

	logs  io.Closer
	owned bool
}

// NewCLI loads the config, starts logging and opens the store it points at
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logs, err := logging.Init(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.OpenConfig(ctx, cfg, app.WithLogger(slog.Default()))
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &CLI{
		App:    application,
		Config: cfg,
		logs:   logs,
		owned:  true,
	}, nil
}

// Close cleans up CLI resources. An injected app belongs to the caller and stays open.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	err := c.App.Close()
	if c.logs != nil {
		logging.Discard()
		if closeErr := c.logs.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
