package database

import (
	"context"

	"github.com/thenoetrevino/corkboard/internal/models"
)

// BoardReader defines read operations for boards.
type BoardReader interface {
	ListBoards(ctx context.Context) ([]*models.Board, error)
	GetBoard(ctx context.Context, id string) (*models.Board, error)
}

// BoardWriter defines write operations for boards.
type BoardWriter interface {
	CreateBoard(ctx context.Context, name string) (*models.Board, error)
	UpdateBoard(ctx context.Context, id string, patch models.BoardPatch) (*models.Board, error)
	DeleteBoard(ctx context.Context, id string) error
	MarkBoardOpened(ctx context.Context, id string) error
}

// BoardRepository combines all board-related operations.
type BoardRepository interface {
	BoardReader
	BoardWriter
}
