package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"xorm.io/builder"
)

// timeLayout is fixed width in UTC so that text comparison in SQL equals
// chronological comparison (ORDER BY last_opened_at relies on it).
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// orderColumn is quoted because ORDER is a keyword
const orderColumn = `"order"`

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullStringToTimePtr converts a nullable timestamp column to *time.Time.
func nullStringToTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullStringToPtr converts sql.NullString to *string.
// Returns nil if the value is not valid.
func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

// nullFloatToPtr converts sql.NullFloat64 to *float64.
// MAX() over an empty scope yields NULL.
func nullFloatToPtr(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		val := nf.Float64
		return &val
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

// execUpdate applies a sparse set of column changes to one row of table.
// The SET clause only names the columns present in set, which is built from a
// patch by the caller; values are always bound, never interpolated.
// Returns the number of rows affected.
func execUpdate(ctx context.Context, conn Conn, table, id string, set builder.Eq) (int64, error) {
	query, args, err := builder.Update(set).From(table).Where(builder.Eq{"id": id}).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s update: %w", table, err)
	}

	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// maxOrder returns the largest order in a scope, nil when the scope is empty.
// Archived rows count, so an archived item's slot is never reused.
func maxOrder(ctx context.Context, conn Conn, table, scopeColumn, scopeID string) (*float64, error) {
	query, args, err := builder.Select("MAX(" + orderColumn + ")").
		From(table).
		Where(builder.Eq{scopeColumn: scopeID}).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build max order query: %w", err)
	}

	var max sql.NullFloat64
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return nil, fmt.Errorf("failed to get max order: %w", err)
	}
	return nullFloatToPtr(max), nil
}
