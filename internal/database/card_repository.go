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

// CardRepo handles all card-related database operations.
type CardRepo struct {
	*store
}

const cardColumns = `id, column_id, title, description, "order", archived, created_at, updated_at`

// ListCardsForBoard returns every active card whose column belongs to the board,
// ordered by card order. Only the card's own archived flag filters; cards in an
// archived column are still returned.
func (r *CardRepo) ListCardsForBoard(ctx context.Context, boardID string) ([]*models.Card, error) {
	cards, err := r.listCards(ctx,
		`SELECT c.id, c.column_id, c.title, c.description, c."order", c.archived, c.created_at, c.updated_at
		 FROM cards c
		 INNER JOIN columns col ON col.id = c.column_id
		 WHERE col.board_id = ? AND c.archived = 0
		 ORDER BY c."order" ASC, c.created_at ASC`,
		boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for board %s: %w", boardID, err)
	}
	return cards, nil
}

// ListCardsForColumn returns the active cards of one column in ascending order.
func (r *CardRepo) ListCardsForColumn(ctx context.Context, columnID string) ([]*models.Card, error) {
	cards, err := r.listCards(ctx,
		`SELECT `+cardColumns+` FROM cards
		 WHERE column_id = ? AND archived = 0
		 ORDER BY "order" ASC, created_at ASC`,
		columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for column %s: %w", columnID, err)
	}
	return cards, nil
}

func (r *CardRepo) listCards(ctx context.Context, query string, args ...any) ([]*models.Card, error) {
	cards := []*models.Card{}
	err := r.guard.Run(ctx, func(conn Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			card, err := scanCard(rows)
			if err != nil {
				return fmt.Errorf("scanning card row: %w", err)
			}
			cards = append(cards, card)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCard retrieves a card by ID. A missing card is (nil, nil).
func (r *CardRepo) GetCard(ctx context.Context, id string) (*models.Card, error) {
	var card *models.Card
	err := r.guard.Run(ctx, func(conn Conn) error {
		var err error
		card, err = getCard(ctx, conn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return card, nil
}

// CreateCard appends a card to a column, after the column's current maximum
// order unless order is given. A missing column surfaces as ErrConstraint.
func (r *CardRepo) CreateCard(ctx context.Context, columnID, title string, description *string, order *float64) (*models.Card, error) {
	now := r.now()
	card := &models.Card{
		ID:          newID(),
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.guard.Run(ctx, func(conn Conn) error {
		if order != nil {
			card.Order = *order
		} else {
			highest, err := maxOrder(ctx, conn, "cards", "column_id", columnID)
			if err != nil {
				return err
			}
			card.Order = ordering.Next(highest)
		}

		ts := formatTime(now)
		_, err := conn.ExecContext(ctx,
			`INSERT INTO cards (id, column_id, title, description, "order", archived, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			card.ID, card.ColumnID, card.Title, card.Description, card.Order, card.Archived, ts, ts,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

// UpdateCard applies the fields present in patch and refreshes updatedAt.
func (r *CardRepo) UpdateCard(ctx context.Context, id string, patch models.CardPatch) (*models.Card, error) {
	set := builder.Eq{"updated_at": formatTime(r.now())}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Order != nil {
		set[orderColumn] = *patch.Order
	}
	if patch.Archived != nil {
		set["archived"] = *patch.Archived
	}

	card, err := r.update(ctx, id, set)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return card, nil
}

// MoveCard puts a card into a column at the given order. The target column is
// not required to belong to the card's current board.
func (r *CardRepo) MoveCard(ctx context.Context, id string, move models.CardMove) (*models.Card, error) {
	card, err := r.update(ctx, id, builder.Eq{
		"column_id":  move.ColumnID,
		orderColumn:  move.Order,
		"updated_at": formatTime(r.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move card %s: %w", id, err)
	}
	return card, nil
}

func (r *CardRepo) update(ctx context.Context, id string, set builder.Eq) (*models.Card, error) {
	var card *models.Card
	err := r.guard.Run(ctx, func(conn Conn) error {
		affected, err := execUpdate(ctx, conn, "cards", id, set)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &models.NotFoundError{Kind: models.KindCard, ID: id}
		}
		card, err = getCard(ctx, conn, id)
		return err
	})
	return card, err
}

// DeleteCard removes a card. Deleting a missing card is not an error.
func (r *CardRepo) DeleteCard(ctx context.Context, id string) error {
	err := r.guard.Run(ctx, func(conn Conn) error {
		_, err := conn.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

// BatchUpdateCardOrders applies each {id, order} pair in the given sequence
// inside one transaction.
func (r *CardRepo) BatchUpdateCardOrders(ctx context.Context, updates []models.OrderUpdate) error {
	if err := applyOrders(ctx, r.store, "cards", models.KindCard, updates); err != nil {
		return fmt.Errorf("failed to update card orders: %w", err)
	}
	return nil
}

// RebalanceCards rewrites the orders of every card in a column to 1..n.
func (r *CardRepo) RebalanceCards(ctx context.Context, columnID string) (int, error) {
	n, err := rebalance(ctx, r.store, "cards", "column_id", columnID)
	if err != nil {
		return 0, fmt.Errorf("failed to rebalance cards of column %s: %w", columnID, err)
	}
	return n, nil
}

func getCard(ctx context.Context, conn Conn, id string) (*models.Card, error) {
	row := conn.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return card, err
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		card                 models.Card
		description          sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&card.ID, &card.ColumnID, &card.Title, &description, &card.Order, &card.Archived, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	card.Description = nullStringToPtr(description)

	var err error
	if card.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if card.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &card, nil
}
