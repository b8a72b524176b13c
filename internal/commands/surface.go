// Package commands is the request/response surface over the store: one call
// per operation, validated at the boundary, dispatchable by name.
package commands

import (
	"context"

	"github.com/thenoetrevino/corkboard/internal/backup"
	"github.com/thenoetrevino/corkboard/internal/database"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// Maintenance is the store housekeeping the surface exposes next to the
// entity calls. The application container implements it.
type Maintenance interface {
	CreateBackup(ctx context.Context) (string, error)
	ListBackups() ([]backup.Info, error)
	CleanupOldBackups(keep int) (int, error)
	CheckIntegrity(ctx context.Context) (bool, error)
	AppliedMigrations(ctx context.Context) ([]database.AppliedMigration, error)
}

// Surface validates call inputs and forwards them to the repositories.
type Surface struct {
	store database.DataStore
	maint Maintenance
}

// NewSurface creates a Surface over store and maint.
func NewSurface(store database.DataStore, maint Maintenance) *Surface {
	return &Surface{store: store, maint: maint}
}

// ============================================================================
// INPUTS
// ============================================================================

// IDInput names a single board, column or card.
type IDInput struct {
	ID string `json:"id"`
}

// BoardIDInput names the board to list columns or cards of.
type BoardIDInput struct {
	BoardID string `json:"boardId"`
}

// ColumnIDInput names the column to list or rebalance cards of.
type ColumnIDInput struct {
	ColumnID string `json:"columnId"`
}

type CreateBoardInput struct {
	Name string `json:"name"`
}

type UpdateBoardInput struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
}

type CreateColumnInput struct {
	BoardID string   `json:"boardId"`
	Name    string   `json:"name"`
	Order   *float64 `json:"order,omitempty"`
}

type UpdateColumnInput struct {
	ID       string   `json:"id"`
	Name     *string  `json:"name,omitempty"`
	Order    *float64 `json:"order,omitempty"`
	Archived *bool    `json:"archived,omitempty"`
}

type CreateCardInput struct {
	ColumnID    string   `json:"columnId"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Order       *float64 `json:"order,omitempty"`
}

type UpdateCardInput struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Order       *float64 `json:"order,omitempty"`
	Archived    *bool    `json:"archived,omitempty"`
}

// MoveCardInput puts a card into a column at an order. Order is required.
type MoveCardInput struct {
	ID       string   `json:"id"`
	ColumnID string   `json:"columnId"`
	Order    *float64 `json:"order"`
}

// OrdersInput is a batch of order assignments applied in sequence.
type OrdersInput struct {
	Updates []models.OrderUpdate `json:"updates"`
}

type CleanupInput struct {
	KeepCount int `json:"keepCount"`
}

// ============================================================================
// BOARDS
// ============================================================================

func (s *Surface) ListBoards(ctx context.Context) ([]*models.Board, error) {
	return s.store.ListBoards(ctx)
}

// GetBoard returns nil when the board does not exist.
func (s *Surface) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.GetBoard(ctx, id)
}

func (s *Surface) CreateBoard(ctx context.Context, in CreateBoardInput) (*models.Board, error) {
	name, err := cleanName(in.Name, ErrEmptyName, ErrNameTooLong)
	if err != nil {
		return nil, err
	}
	return s.store.CreateBoard(ctx, name)
}

func (s *Surface) UpdateBoard(ctx context.Context, in UpdateBoardInput) (*models.Board, error) {
	if err := requireID("id", in.ID); err != nil {
		return nil, err
	}
	var patch models.BoardPatch
	if in.Name != nil {
		name, err := cleanName(*in.Name, ErrEmptyName, ErrNameTooLong)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	return s.store.UpdateBoard(ctx, in.ID, patch)
}

func (s *Surface) DeleteBoard(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.store.DeleteBoard(ctx, id)
}

func (s *Surface) MarkBoardOpened(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.store.MarkBoardOpened(ctx, id)
}

// ============================================================================
// COLUMNS
// ============================================================================

func (s *Surface) ListColumns(ctx context.Context, boardID string) ([]*models.Column, error) {
	if err := requireID("boardId", boardID); err != nil {
		return nil, err
	}
	return s.store.ListColumns(ctx, boardID)
}

// GetColumn returns nil when the column does not exist.
func (s *Surface) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.GetColumn(ctx, id)
}

func (s *Surface) CreateColumn(ctx context.Context, in CreateColumnInput) (*models.Column, error) {
	if err := requireID("boardId", in.BoardID); err != nil {
		return nil, err
	}
	name, err := cleanName(in.Name, ErrEmptyName, ErrNameTooLong)
	if err != nil {
		return nil, err
	}
	if err := validateOrder(in.Order); err != nil {
		return nil, err
	}
	return s.store.CreateColumn(ctx, in.BoardID, name, in.Order)
}

func (s *Surface) UpdateColumn(ctx context.Context, in UpdateColumnInput) (*models.Column, error) {
	if err := requireID("id", in.ID); err != nil {
		return nil, err
	}
	patch := models.ColumnPatch{Order: in.Order, Archived: in.Archived}
	if in.Name != nil {
		name, err := cleanName(*in.Name, ErrEmptyName, ErrNameTooLong)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if err := validateOrder(in.Order); err != nil {
		return nil, err
	}
	return s.store.UpdateColumn(ctx, in.ID, patch)
}

func (s *Surface) DeleteColumn(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.store.DeleteColumn(ctx, id)
}

func (s *Surface) ReorderColumns(ctx context.Context, updates []models.OrderUpdate) error {
	if err := validateOrderUpdates(updates); err != nil {
		return err
	}
	return s.store.ReorderColumns(ctx, updates)
}

// RebalanceColumns respaces a board's column orders to 1..n and returns how many changed.
func (s *Surface) RebalanceColumns(ctx context.Context, boardID string) (int, error) {
	if err := requireID("boardId", boardID); err != nil {
		return 0, err
	}
	return s.store.RebalanceColumns(ctx, boardID)
}

// ============================================================================
// CARDS
// ============================================================================

func (s *Surface) ListCardsForBoard(ctx context.Context, boardID string) ([]*models.Card, error) {
	if err := requireID("boardId", boardID); err != nil {
		return nil, err
	}
	return s.store.ListCardsForBoard(ctx, boardID)
}

func (s *Surface) ListCardsForColumn(ctx context.Context, columnID string) ([]*models.Card, error) {
	if err := requireID("columnId", columnID); err != nil {
		return nil, err
	}
	return s.store.ListCardsForColumn(ctx, columnID)
}

// GetCard returns nil when the card does not exist.
func (s *Surface) GetCard(ctx context.Context, id string) (*models.Card, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.GetCard(ctx, id)
}

func (s *Surface) CreateCard(ctx context.Context, in CreateCardInput) (*models.Card, error) {
	if err := requireID("columnId", in.ColumnID); err != nil {
		return nil, err
	}
	title, err := cleanName(in.Title, ErrEmptyTitle, ErrTitleTooLong)
	if err != nil {
		return nil, err
	}
	if err := validateOrder(in.Order); err != nil {
		return nil, err
	}
	return s.store.CreateCard(ctx, in.ColumnID, title, in.Description, in.Order)
}

func (s *Surface) UpdateCard(ctx context.Context, in UpdateCardInput) (*models.Card, error) {
	if err := requireID("id", in.ID); err != nil {
		return nil, err
	}
	patch := models.CardPatch{Description: in.Description, Order: in.Order, Archived: in.Archived}
	if in.Title != nil {
		title, err := cleanName(*in.Title, ErrEmptyTitle, ErrTitleTooLong)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if err := validateOrder(in.Order); err != nil {
		return nil, err
	}
	return s.store.UpdateCard(ctx, in.ID, patch)
}

func (s *Surface) DeleteCard(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return s.store.DeleteCard(ctx, id)
}

func (s *Surface) MoveCard(ctx context.Context, in MoveCardInput) (*models.Card, error) {
	if err := requireID("id", in.ID); err != nil {
		return nil, err
	}
	if err := requireID("columnId", in.ColumnID); err != nil {
		return nil, err
	}
	if in.Order == nil {
		return nil, ErrMissingOrder
	}
	if err := validateOrder(in.Order); err != nil {
		return nil, err
	}
	return s.store.MoveCard(ctx, in.ID, models.CardMove{ColumnID: in.ColumnID, Order: *in.Order})
}

func (s *Surface) BatchUpdateCardOrders(ctx context.Context, updates []models.OrderUpdate) error {
	if err := validateOrderUpdates(updates); err != nil {
		return err
	}
	return s.store.BatchUpdateCardOrders(ctx, updates)
}

// RebalanceCards respaces a column's card orders to 1..n and returns how many changed.
func (s *Surface) RebalanceCards(ctx context.Context, columnID string) (int, error) {
	if err := requireID("columnId", columnID); err != nil {
		return 0, err
	}
	return s.store.RebalanceCards(ctx, columnID)
}

// ============================================================================
// MAINTENANCE
// ============================================================================

// CreateBackup snapshots the store and returns the snapshot's path.
func (s *Surface) CreateBackup(ctx context.Context) (string, error) {
	return s.maint.CreateBackup(ctx)
}

func (s *Surface) ListBackups() ([]backup.Info, error) {
	return s.maint.ListBackups()
}

// CleanupOldBackups keeps the keep newest snapshots and returns how many were deleted.
func (s *Surface) CleanupOldBackups(keep int) (int, error) {
	if keep < 0 {
		return 0, ErrInvalidKeep
	}
	return s.maint.CleanupOldBackups(keep)
}

func (s *Surface) CheckIntegrity(ctx context.Context) (bool, error) {
	return s.maint.CheckIntegrity(ctx)
}

func (s *Surface) ListMigrations(ctx context.Context) ([]database.AppliedMigration, error) {
	return s.maint.AppliedMigrations(ctx)
}
