package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/corkboard/internal/models"
	"github.com/thenoetrevino/corkboard/internal/ordering"
	"xorm.io/builder"
)

// applyOrders sets the order of each listed row of table, in sequence, in one transaction.
// An unknown id rolls back the whole batch.
func applyOrders(ctx context.Context, s *store, table, kind string, updates []models.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	now := formatTime(s.now())

	return s.guard.RunTx(ctx, func(conn Conn) error {
		for _, u := range updates {
			affected, err := execUpdate(ctx, conn, table, u.ID, builder.Eq{
				orderColumn:  u.Order,
				"updated_at": now,
			})
			if err != nil {
				return err
			}
			if affected == 0 {
				return &models.NotFoundError{Kind: kind, ID: u.ID}
			}
		}
		return nil
	})
}

// rebalance respaces the orders of every row in a scope to 1..n, keeping the
// current sequence (ties broken by creation time). Rows whose order is already
// right are left untouched.
func rebalance(ctx context.Context, s *store, table, scopeColumn, scopeID string) (int, error) {
	now := formatTime(s.now())
	rewritten := 0

	err := s.guard.RunTx(ctx, func(conn Conn) error {
		query, args, err := builder.Select("id", orderColumn).
			From(table).
			Where(builder.Eq{scopeColumn: scopeID}).
			OrderBy(orderColumn + " ASC, created_at ASC, id ASC").
			ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build rebalance query: %w", err)
		}

		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		var (
			ids    []string
			orders []float64
		)
		for rows.Next() {
			var id string
			var order float64
			if err := rows.Scan(&id, &order); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
			orders = append(orders, order)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i, key := range ordering.Rebalance(len(ids)) {
			if orders[i] == key {
				continue
			}
			if _, err := execUpdate(ctx, conn, table, ids[i], builder.Eq{
				orderColumn:  key,
				"updated_at": now,
			}); err != nil {
				return err
			}
			rewritten++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rewritten, nil
}
