package models

import "time"

// Card represents a single card in a column
type Card struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"columnId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Order       float64   `json:"order"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CardPatch carries the fields of a card that should change.
// Description can only be replaced, not cleared, matching the update call contract.
type CardPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Order       *float64 `json:"order,omitempty"`
	Archived    *bool    `json:"archived,omitempty"`
}

// IsEmpty reports whether the patch changes no fields.
func (p CardPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Order == nil && p.Archived == nil
}

// CardMove reassigns a card to a column at the given order.
// This is how drag-and-drop across columns is represented.
type CardMove struct {
	ColumnID string  `json:"columnId"`
	Order    float64 `json:"order"`
}

// GetID returns the card id.
func (c *Card) GetID() string {
	return c.ID
}
