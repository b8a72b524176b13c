package database

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store error kinds. The driver's own message is kept after the kind so the
// caller sees the exact constraint or lock that failed.
var (
	// ErrConstraint wraps foreign key, NOT NULL and uniqueness violations
	ErrConstraint = errors.New("constraint violation")

	// ErrContention wraps lock waits that outlived the busy timeout
	ErrContention = errors.New("database is busy")

	// ErrClosed is returned by a guard after Close
	ErrClosed = errors.New("database is closed")
)

// classify maps a driver error to one of the store error kinds.
// Errors that are already classified, or are not driver errors, pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConstraint) || errors.Is(err, ErrContention) {
		return err
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return fmt.Errorf("%w: %w", ErrContention, err)
	default:
		return err
	}
}
