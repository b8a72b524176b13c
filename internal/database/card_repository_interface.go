package database

import (
	"context"

	"github.com/thenoetrevino/corkboard/internal/models"
)

// CardReader defines read operations for cards.
type CardReader interface {
	ListCardsForBoard(ctx context.Context, boardID string) ([]*models.Card, error)
	ListCardsForColumn(ctx context.Context, columnID string) ([]*models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
}

// CardWriter defines write operations for cards.
type CardWriter interface {
	CreateCard(ctx context.Context, columnID, title string, description *string, order *float64) (*models.Card, error)
	UpdateCard(ctx context.Context, id string, patch models.CardPatch) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	MoveCard(ctx context.Context, id string, move models.CardMove) (*models.Card, error)
	BatchUpdateCardOrders(ctx context.Context, updates []models.OrderUpdate) error
	RebalanceCards(ctx context.Context, columnID string) (int, error)
}

// CardRepository combines all card-related operations.
type CardRepository interface {
	CardReader
	CardWriter
}
