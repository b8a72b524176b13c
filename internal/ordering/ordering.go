// Package ordering computes the floating-point position keys used to order
// columns within a board and cards within a column.
//
// Keys are compared ascending and need not be contiguous. Inserting between two
// siblings takes their midpoint, so repeated insertions at the same spot halve
// the gap each time; after roughly fifty halvings float64 can no longer tell the
// neighbours apart. NeedsRebalance detects that state and Rebalance produces a
// fresh, evenly spaced sequence.
package ordering

import (
	"math"

	"github.com/thenoetrevino/corkboard/internal/models"
)

// MinGap is the smallest distance between neighbouring keys before a scope
// should be rebalanced.
const MinGap = 1e-9

// Next returns the key for an item appended after the current maximum.
// A nil max means the scope is empty.
func Next(max *float64) float64 {
	if max == nil {
		return models.FirstOrder
	}
	return *max + models.OrderStep
}

// Between returns a key strictly between prev and next.
// A nil prev means "insert at the head", a nil next "insert at the tail".
func Between(prev, next *float64) float64 {
	switch {
	case prev == nil && next == nil:
		return models.FirstOrder
	case prev == nil:
		return *next - models.OrderStep
	case next == nil:
		return *prev + models.OrderStep
	default:
		return *prev + (*next-*prev)/2
	}
}

// NeedsRebalance reports whether a sorted key sequence has neighbours closer
// than MinGap, duplicates, or non-finite values.
func NeedsRebalance(sorted []float64) bool {
	for i, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
		if i > 0 && v-sorted[i-1] < MinGap {
			return true
		}
	}
	return false
}

// Rebalance returns n evenly spaced integral keys starting at 1.
func Rebalance(n int) []float64 {
	if n <= 0 {
		return nil
	}
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = models.FirstOrder + float64(i)*models.OrderStep
	}
	return keys
}
