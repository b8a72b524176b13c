package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/corkboard/internal/models"
	"xorm.io/builder"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	*store
}

const boardColumns = `id, name, last_opened_at, created_at, updated_at`

// ListBoards returns every board, most recently opened first.
// Boards never opened sort last; ties fall back to newest created first.
func (r *BoardRepo) ListBoards(ctx context.Context) ([]*models.Board, error) {
	var boards []*models.Board
	err := r.guard.Run(ctx, func(conn Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT `+boardColumns+` FROM boards
			 ORDER BY last_opened_at DESC NULLS LAST, created_at DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			board, err := scanBoard(rows)
			if err != nil {
				return err
			}
			boards = append(boards, board)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	return boards, nil
}

// GetBoard retrieves a board by its ID. A missing board is (nil, nil).
func (r *BoardRepo) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	var board *models.Board
	err := r.guard.Run(ctx, func(conn Conn) error {
		var err error
		board, err = getBoard(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get board %s: %w", id, err)
	}
	return board, nil
}

// CreateBoard creates a board. All timestamps, including lastOpenedAt, equal the creation time.
func (r *BoardRepo) CreateBoard(ctx context.Context, name string) (*models.Board, error) {
	now := r.now()
	board := &models.Board{
		ID:           newID(),
		Name:         name,
		LastOpenedAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.guard.Run(ctx, func(conn Conn) error {
		ts := formatTime(now)
		_, err := conn.ExecContext(ctx,
			`INSERT INTO boards (id, name, last_opened_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			board.ID, board.Name, ts, ts, ts,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// UpdateBoard applies the fields present in patch and refreshes updatedAt.
func (r *BoardRepo) UpdateBoard(ctx context.Context, id string, patch models.BoardPatch) (*models.Board, error) {
	set := builder.Eq{"updated_at": formatTime(r.now())}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}

	var board *models.Board
	err := r.guard.Run(ctx, func(conn Conn) error {
		affected, err := execUpdate(ctx, conn, "boards", id, set)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &models.NotFoundError{Kind: models.KindBoard, ID: id}
		}
		board, err = getBoard(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// DeleteBoard removes a board; its columns and their cards go with it via ON DELETE CASCADE.
// Deleting a missing board is not an error.
func (r *BoardRepo) DeleteBoard(ctx context.Context, id string) error {
	err := r.guard.Run(ctx, func(conn Conn) error {
		_, err := conn.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete board %s: %w", id, err)
	}
	return nil
}

// MarkBoardOpened refreshes lastOpenedAt only; updatedAt is left alone.
func (r *BoardRepo) MarkBoardOpened(ctx context.Context, id string) error {
	now := formatTime(r.now())
	err := r.guard.Run(ctx, func(conn Conn) error {
		result, err := conn.ExecContext(ctx, `UPDATE boards SET last_opened_at = ? WHERE id = ?`, now, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &models.NotFoundError{Kind: models.KindBoard, ID: id}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mark board opened: %w", err)
	}
	return nil
}

func getBoard(ctx context.Context, conn Conn, id string) (*models.Board, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id)
	board, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return board, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*models.Board, error) {
	var (
		board                models.Board
		lastOpenedAt         sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&board.ID, &board.Name, &lastOpenedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if board.LastOpenedAt, err = nullStringToTimePtr(lastOpenedAt); err != nil {
		return nil, err
	}
	if board.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if board.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &board, nil
}
