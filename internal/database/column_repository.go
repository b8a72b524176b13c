package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/corkboard/internal/models"
	"github.com/thenoetrevino/corkboard/internal/ordering"
	"xorm.io/builder"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	*store
}

const columnColumns = `id, board_id, name, "order", archived, created_at, updated_at`

// ListColumns returns the active (non-archived) columns of a board in ascending order.
func (r *ColumnRepo) ListColumns(ctx context.Context, boardID string) ([]*models.Column, error) {
	var columns []*models.Column
	err := r.guard.Run(ctx, func(conn Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT `+columnColumns+` FROM columns
			 WHERE board_id = ? AND archived = 0
			 ORDER BY "order" ASC, created_at ASC`,
			boardID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			col, err := scanColumn(rows)
			if err != nil {
				return fmt.Errorf("scanning column row: %w", err)
			}
			columns = append(columns, col)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for board %s: %w", boardID, err)
	}
	if columns == nil {
		columns = []*models.Column{}
	}
	return columns, nil
}

// GetColumn retrieves a column by ID, archived or not. A missing column is (nil, nil).
func (r *ColumnRepo) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	var col *models.Column
	err := r.guard.Run(ctx, func(conn Conn) error {
		var err error
		col, err = getColumn(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get column %s: %w", id, err)
	}
	return col, nil
}

// CreateColumn appends a column to a board. Without an explicit order the
// column goes after the board's current maximum (1 on an empty board).
// A missing board surfaces as ErrConstraint.
func (r *ColumnRepo) CreateColumn(ctx context.Context, boardID, name string, order *float64) (*models.Column, error) {
	now := r.now()
	col := &models.Column{
		ID:        newID(),
		BoardID:   boardID,
		Name:      name,
		Archived:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.guard.Run(ctx, func(conn Conn) error {
		if order != nil {
			col.Order = *order
		} else {
			highest, err := maxOrder(ctx, conn, "columns", "board_id", boardID)
			if err != nil {
				return err
			}
			col.Order = ordering.Next(highest)
		}

		ts := formatTime(now)
		_, err := conn.ExecContext(ctx,
			`INSERT INTO columns (id, board_id, name, "order", archived, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			col.ID, col.BoardID, col.Name, col.Order, col.Archived, ts, ts,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return col, nil
}

// UpdateColumn applies the fields present in patch and refreshes updatedAt.
func (r *ColumnRepo) UpdateColumn(ctx context.Context, id string, patch models.ColumnPatch) (*models.Column, error) {
	set := builder.Eq{"updated_at": formatTime(r.now())}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Order != nil {
		set[orderColumn] = *patch.Order
	}
	if patch.Archived != nil {
		set["archived"] = *patch.Archived
	}

	var col *models.Column
	err := r.guard.Run(ctx, func(conn Conn) error {
		affected, err := execUpdate(ctx, conn, "columns", id, set)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &models.NotFoundError{Kind: models.KindColumn, ID: id}
		}
		col, err = getColumn(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return col, nil
}

// DeleteColumn removes a column and, via ON DELETE CASCADE, all its cards.
// Deleting a missing column is not an error.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id string) error {
	err := r.guard.Run(ctx, func(conn Conn) error {
		_, err := conn.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete column %s: %w", id, err)
	}
	return nil
}

// ReorderColumns applies each {id, order} pair in the given sequence inside
// one transaction: either every update lands or none does.
func (r *ColumnRepo) ReorderColumns(ctx context.Context, updates []models.OrderUpdate) error {
	if err := applyOrders(ctx, r.store, "columns", models.KindColumn, updates); err != nil {
		return fmt.Errorf("failed to reorder columns: %w", err)
	}
	return nil
}

// RebalanceColumns rewrites every column order of a board, archived ones
// included, to 1..n keeping the current sequence. Returns the number of columns rewritten.
func (r *ColumnRepo) RebalanceColumns(ctx context.Context, boardID string) (int, error) {
	n, err := rebalance(ctx, r.store, "columns", "board_id", boardID)
	if err != nil {
		return 0, fmt.Errorf("failed to rebalance columns of board %s: %w", boardID, err)
	}
	return n, nil
}

func getColumn(ctx context.Context, conn Conn, id string) (*models.Column, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+columnColumns+` FROM columns WHERE id = ?`, id)
	col, err := scanColumn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return col, err
}

func scanColumn(row rowScanner) (*models.Column, error) {
	var (
		col                  models.Column
		createdAt, updatedAt string
	)
	if err := row.Scan(&col.ID, &col.BoardID, &col.Name, &col.Order, &col.Archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if col.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if col.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &col, nil
}
