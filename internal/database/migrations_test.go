package database

import (
	"context"
	"path/filepath"
	"testing"
)

func tableExists(t *testing.T, g *Guard, name string) bool {
	t.Helper()
	var exists bool
	err := g.Run(context.Background(), func(conn Conn) error {
		return conn.QueryRowContext(context.Background(),
			`SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`, name,
		).Scan(&exists)
	})
	if err != nil {
		t.Fatalf("Failed to check table %s: %v", name, err)
	}
	return exists
}

func TestLoadMigrations_SortedByName(t *testing.T) {
	migrations, err := LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error = %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	if migrations[0].Name != "001_initial_schema" {
		t.Errorf("first migration = %q, want 001_initial_schema", migrations[0].Name)
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].Name >= migrations[i].Name {
			t.Errorf("migrations out of order: %q before %q", migrations[i-1].Name, migrations[i].Name)
		}
	}
}

func TestOpen_CreatesSchemaAndLedger(t *testing.T) {
	t.Parallel()
	guard, _ := setupTestGuard(t)

	for _, table := range []string{"_migrations", "boards", "columns", "cards"} {
		if !tableExists(t, guard, table) {
			t.Errorf("table %s was not created", table)
		}
	}

	applied, err := AppliedMigrations(context.Background(), guard)
	if err != nil {
		t.Fatalf("AppliedMigrations() error = %v", err)
	}
	if len(applied) != 1 || applied[0].Name != "001_initial_schema" {
		t.Errorf("applied = %+v, want only 001_initial_schema", applied)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	t.Parallel()
	guard, _ := setupTestGuard(t)
	ctx := context.Background()

	migrations, err := LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error = %v", err)
	}
	// CREATE TABLE without IF NOT EXISTS would fail if the script re-ran
	for i := 0; i < 2; i++ {
		if err := RunMigrations(ctx, guard, migrations); err != nil {
			t.Fatalf("RunMigrations() run %d error = %v", i+1, err)
		}
	}

	if got := countRows(t, guard, "_migrations"); got != len(migrations) {
		t.Errorf("ledger has %d rows, want %d", got, len(migrations))
	}
}

func TestRunMigrations_ReopenKeepsLedger(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "kanban.db")
	ctx := context.Background()

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer second.Close()

	applied, err := AppliedMigrations(ctx, second)
	if err != nil {
		t.Fatalf("AppliedMigrations() error = %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("expected 1 ledger row after reopen, got %d", len(applied))
	}
}

func TestRunMigrations_FailureRollsBackAndStops(t *testing.T) {
	t.Parallel()
	guard, _ := setupTestGuard(t)
	ctx := context.Background()

	migrations := []Migration{
		{Name: "900_partial", Script: `CREATE TABLE partial (id TEXT); THIS IS NOT SQL;`},
		{Name: "901_after", Script: `CREATE TABLE after_failure (id TEXT);`},
	}
	err := RunMigrations(ctx, guard, migrations)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}

	if tableExists(t, guard, "partial") {
		t.Error("statements of a failed migration must roll back")
	}
	if tableExists(t, guard, "after_failure") {
		t.Error("migrations after a failure must not run")
	}

	applied, err := AppliedMigrations(ctx, guard)
	if err != nil {
		t.Fatalf("AppliedMigrations() error = %v", err)
	}
	for _, m := range applied {
		if m.Name == "900_partial" || m.Name == "901_after" {
			t.Errorf("ledger recorded %s despite the failure", m.Name)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// A directory cannot be opened as a database file
	_, err := Open(context.Background(), dir)
	if err == nil {
		t.Fatal("expected error opening a directory as the store")
	}
}
