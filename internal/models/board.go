package models

import "time"

// Board represents a container for kanban columns and cards.
// Boards are the top-level organizational unit in corkboard.
type Board struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	LastOpenedAt *time.Time `json:"lastOpenedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BoardPatch carries the fields of a board that should change.
// A nil field is left untouched.
type BoardPatch struct {
	Name *string `json:"name,omitempty"`
}

// IsEmpty reports whether the patch changes no fields.
func (p BoardPatch) IsEmpty() bool {
	return p.Name == nil
}

// GetID returns the board id.
func (b *Board) GetID() string {
	return b.ID
}
