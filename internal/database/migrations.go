package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one named, append-only schema change.
type Migration struct {
	Name   string
	Script string
}

// AppliedMigration is a row of the migration ledger.
type AppliedMigration struct {
	Name      string    `json:"name"`
	AppliedAt time.Time `json:"appliedAt"`
}

const createLedger = `
	CREATE TABLE IF NOT EXISTS _migrations (
		name TEXT PRIMARY KEY NOT NULL,
		applied_at TEXT NOT NULL
	)`

// LoadMigrations returns the embedded migrations in file-name order.
// The file name without its extension is the migration name.
func LoadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		script, err := migrationFiles.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{
			Name:   strings.TrimSuffix(entry.Name(), ".sql"),
			Script: string(script),
		})
	}
	return migrations, nil
}

// RunMigrations ensures the ledger exists and applies, in order, every
// migration it has no record of. Each migration and its ledger row commit
// together, so re-running on a migrated store is a no-op.
func RunMigrations(ctx context.Context, g *Guard, migrations []Migration) error {
	err := g.Run(ctx, func(conn Conn) error {
		_, err := conn.ExecContext(ctx, createLedger)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create migration ledger: %w", err)
	}

	for _, m := range migrations {
		err := g.RunTx(ctx, func(conn Conn) error {
			var applied bool
			if err := conn.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM _migrations WHERE name = ?)`, m.Name,
			).Scan(&applied); err != nil {
				return err
			}
			if applied {
				return nil
			}

			if _, err := conn.ExecContext(ctx, m.Script); err != nil {
				return err
			}
			if _, err := conn.ExecContext(ctx,
				`INSERT INTO _migrations (name, applied_at) VALUES (?, ?)`,
				m.Name, formatTime(time.Now()),
			); err != nil {
				return err
			}
			slog.Info("Applied migration", "name", m.Name)
			return nil
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}

// AppliedMigrations lists the ledger in application order.
func AppliedMigrations(ctx context.Context, g *Guard) ([]AppliedMigration, error) {
	var applied []AppliedMigration
	err := g.Run(ctx, func(conn Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT name, applied_at FROM _migrations ORDER BY applied_at ASC, name ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m AppliedMigration
			var appliedAt string
			if err := rows.Scan(&m.Name, &appliedAt); err != nil {
				return err
			}
			if m.AppliedAt, err = parseTime(appliedAt); err != nil {
				return err
			}
			applied = append(applied, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	return applied, nil
}
