package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Conn is the query surface handed to functions running under the guard.
// Both *sql.DB and *sql.Tx satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Guard owns the single store handle and serializes every unit of work on it.
// The handle itself is never exposed; callers get a Conn for the duration of Run.
type Guard struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

func newGuard(db *sql.DB) *Guard {
	return &Guard{db: db}
}

// Run acquires exclusive access, executes fn and releases access on every
// exit path, including a panic inside fn. Store errors are classified into
// ErrConstraint / ErrContention while keeping the driver's message.
func (g *Guard) Run(ctx context.Context, fn func(Conn) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return classify(fn(g.db))
}

// RunTx is Run inside a transaction: committed when fn returns nil, rolled back otherwise.
func (g *Guard) RunTx(ctx context.Context, fn func(Conn) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// IntegrityCheck runs the store's built-in consistency check.
// ok is true only when SQLite reports exactly "ok"; detail holds the first reported problem otherwise.
func (g *Guard) IntegrityCheck(ctx context.Context) (ok bool, detail string, err error) {
	err = g.Run(ctx, func(conn Conn) error {
		return conn.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&detail)
	})
	if err != nil {
		return false, "", fmt.Errorf("integrity check: %w", err)
	}
	return detail == "ok", detail, nil
}

// Checkpoint folds the write-ahead log into the main file so a file-level copy
// of the store alone is current.
func (g *Guard) Checkpoint(ctx context.Context) error {
	return g.Run(ctx, func(conn Conn) error {
		_, err := conn.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)")
		return err
	})
}

// Close waits for any in-flight unit of work and closes the handle.
func (g *Guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true
	return g.db.Close()
}
