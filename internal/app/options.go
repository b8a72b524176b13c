package app

import (
	"log/slog"

	"github.com/thenoetrevino/corkboard/internal/config"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger          *slog.Logger
	startupSnapshot bool
	keepOnStartup   int
}

func defaultAppConfig() appConfig {
	return appConfig{
		logger:          slog.Default(),
		startupSnapshot: true,
		keepOnStartup:   config.DefaultBackupKeep,
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithStartupSnapshot turns the snapshot taken before opening the store on or off
func WithStartupSnapshot(enabled bool) Option {
	return func(cfg *appConfig) {
		cfg.startupSnapshot = enabled
	}
}

// WithKeepOnStartup sets how many snapshots survive the startup cleanup
func WithKeepOnStartup(keep int) Option {
	return func(cfg *appConfig) {
		cfg.keepOnStartup = keep
	}
}

// FromConfig carries the backup settings of a loaded config
func FromConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		cfg.startupSnapshot = c.Backup.StartupSnapshot
		cfg.keepOnStartup = c.Backup.KeepOnStartup
	}
}
