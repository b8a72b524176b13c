package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/thenoetrevino/corkboard/internal/backup"
	"github.com/thenoetrevino/corkboard/internal/commands"
	"github.com/thenoetrevino/corkboard/internal/config"
	"github.com/thenoetrevino/corkboard/internal/database"
)

// StartupLabel names the snapshot taken each time the store is opened
const StartupLabel = "startup"

// BackupLabel names snapshots taken on request
const BackupLabel = "backup"

// App holds the open store and everything built on it.
// This is the main application container that manages service lifecycles.
type App struct {
	guard   *database.Guard
	repo    *database.Repository
	backups *backup.Service
	logger  *slog.Logger

	// Commands is the typed call surface
	Commands *commands.Surface
	// Registry dispatches the same calls by name
	Registry *commands.Registry
}

// Open prepares the store at dbPath for use:
//  1. if the store file exists, snapshot it and prune old snapshots (failures logged)
//  2. open it and apply pending migrations (failures returned)
//  3. run the integrity check (failures logged)
func Open(ctx context.Context, dbPath, backupDir string, opts ...Option) (*App, error) {
	cfg := defaultAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger

	backups := backup.NewService(dbPath, backupDir, backup.WithLogger(logger))
	if cfg.startupSnapshot {
		startupBackup(backups, dbPath, cfg.keepOnStartup, logger)
	}

	guard, err := database.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	a := &App{
		guard:   guard,
		repo:    database.NewRepository(guard),
		backups: backups,
		logger:  logger,
	}
	a.Commands = commands.NewSurface(a.repo, a)
	a.Registry = commands.NewRegistry(a.Commands, logger)

	if _, err := a.CheckIntegrity(ctx); err != nil {
		logger.Error("Integrity check could not run", "error", err)
	}
	return a, nil
}

// OpenConfig opens the store described by a loaded config.
func OpenConfig(ctx context.Context, c *config.Config, opts ...Option) (*App, error) {
	opts = append([]Option{FromConfig(c)}, opts...)
	return Open(ctx, c.DBPath(), c.BackupDir(), opts...)
}

func startupBackup(backups *backup.Service, dbPath string, keep int, logger *slog.Logger) {
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return
	}
	if _, err := backups.Snapshot(StartupLabel); err != nil {
		logger.Warn("Startup backup failed", "error", err)
		return
	}
	if _, err := backups.Retain(keep); err != nil {
		logger.Warn("Startup backup cleanup failed", "error", err)
	}
}

var _ commands.Maintenance = (*App)(nil)

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// CreateBackup folds the write-ahead log into the store file and snapshots it.
// A failed checkpoint is logged; the snapshot still carries the side files.
func (a *App) CreateBackup(ctx context.Context) (string, error) {
	if err := a.guard.Checkpoint(ctx); err != nil {
		a.logger.Warn("Checkpoint before backup failed", "error", err)
	}
	return a.backups.Snapshot(BackupLabel)
}

// ListBackups returns the snapshots, newest first.
func (a *App) ListBackups() ([]backup.Info, error) {
	return a.backups.List()
}

// CleanupOldBackups keeps the keep newest snapshots.
func (a *App) CleanupOldBackups(keep int) (int, error) {
	return a.backups.Retain(keep)
}

// CheckIntegrity reports whether the store passes its consistency check.
// A failing check is logged and never repaired.
func (a *App) CheckIntegrity(ctx context.Context) (bool, error) {
	ok, detail, err := a.guard.IntegrityCheck(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		a.logger.Error("Integrity check failed", "detail", detail)
	}
	return ok, nil
}

// AppliedMigrations lists the migration ledger.
func (a *App) AppliedMigrations(ctx context.Context) ([]database.AppliedMigration, error) {
	return database.AppliedMigrations(ctx, a.guard)
}

// Close closes the store. Calls in flight finish first.
func (a *App) Close() error {
	return a.guard.Close()
}
