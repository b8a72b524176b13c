package commands

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/corkboard/internal/models"
)

// MaxNameLength bounds board names, column names and card titles, in characters.
const MaxNameLength = 200

// cleanName trims surrounding whitespace and enforces the length limit.
func cleanName(name string, empty, tooLong error) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", empty
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", tooLong
	}
	return name, nil
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyID, field)
	}
	return nil
}

func validateOrder(order *float64) error {
	if order == nil {
		return nil
	}
	if math.IsNaN(*order) || math.IsInf(*order, 0) {
		return ErrInvalidOrder
	}
	return nil
}

func validateOrderUpdates(updates []models.OrderUpdate) error {
	for i, u := range updates {
		if err := requireID(fmt.Sprintf("updates[%d].id", i), u.ID); err != nil {
			return err
		}
		if err := validateOrder(&u.Order); err != nil {
			return fmt.Errorf("updates[%d]: %w", i, err)
		}
	}
	return nil
}
