package models

// ============================================================================
// ORDER CONSTANTS
// ============================================================================

// FirstOrder is the order assigned to the first column of a board or the first card of a column
const FirstOrder = 1.0

// OrderStep is the distance between consecutive auto-assigned orders
const OrderStep = 1.0

// ============================================================================
// ENTITY KINDS
// ============================================================================

// Table names double as entity kinds in error messages
const (
	KindBoard  = "board"
	KindColumn = "column"
	KindCard   = "card"
)

// OrderUpdate assigns a new order to a single column or card.
// Batches of these are applied in sequence by reorder operations.
type OrderUpdate struct {
	ID    string  `json:"id"`
	Order float64 `json:"order"`
}
