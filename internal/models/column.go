package models

import "time"

// Column represents a kanban board column (e.g., "To Do", "In Progress", "Done").
// Columns are ordered within their board by the floating-point Order key.
type Column struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Name      string    `json:"name"`
	Order     float64   `json:"order"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ColumnPatch carries the fields of a column that should change.
type ColumnPatch struct {
	Name     *string  `json:"name,omitempty"`
	Order    *float64 `json:"order,omitempty"`
	Archived *bool    `json:"archived,omitempty"`
}

// IsEmpty reports whether the patch changes no fields.
func (p ColumnPatch) IsEmpty() bool {
	return p.Name == nil && p.Order == nil && p.Archived == nil
}

// GetID returns the column id.
func (c *Column) GetID() string {
	return c.ID
}
