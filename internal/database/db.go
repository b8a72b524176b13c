// Package database owns the SQLite store: connection setup, the migration
// ledger, the connection guard and the board/column/card repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// BusyTimeoutMillis bounds how long a statement waits on a lock held by
// another process before failing with a contention error.
const BusyTimeoutMillis = 5000

// Open opens (creating if needed) the store at path, applies the connection
// pragmas, runs pending migrations and returns the guard that owns the handle.
// Any failure is fatal for startup and leaves nothing open.
func Open(ctx context.Context, path string) (*Guard, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite benefits from a single writer connection, and pragmas are per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []struct {
		name string
		stmt string
	}{
		// WAL keeps the file readable while a write is in flight, which file-level backups rely on
		{"WAL mode", "PRAGMA journal_mode = WAL"},
		// Required for CASCADE deletions
		{"foreign keys", "PRAGMA foreign_keys = ON"},
		{"busy timeout", fmt.Sprintf("PRAGMA busy_timeout = %d", BusyTimeoutMillis)},
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p.stmt); err != nil {
			slog.Error("Failed to apply pragma", "pragma", p.name, "error", err)
			closeQuietly(db)
			return nil, fmt.Errorf("failed to enable %s: %w", p.name, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	guard := newGuard(db)

	migrations, err := LoadMigrations()
	if err != nil {
		closeQuietly(db)
		return nil, err
	}
	if err := RunMigrations(ctx, guard, migrations); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return guard, nil
}

func closeQuietly(db *sql.DB) {
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("error closing db", "error", closeErr)
	}
}
