package database

import (
	"context"

	"github.com/thenoetrevino/corkboard/internal/models"
)

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	ListColumns(ctx context.Context, boardID string) ([]*models.Column, error)
	GetColumn(ctx context.Context, id string) (*models.Column, error)
}

// ColumnWriter defines write operations for columns.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, boardID, name string, order *float64) (*models.Column, error)
	UpdateColumn(ctx context.Context, id string, patch models.ColumnPatch) (*models.Column, error)
	DeleteColumn(ctx context.Context, id string) error
	ReorderColumns(ctx context.Context, updates []models.OrderUpdate) error
	RebalanceColumns(ctx context.Context, boardID string) (int, error)
}

// ColumnRepository combines all column-related operations.
type ColumnRepository interface {
	ColumnReader
	ColumnWriter
}
