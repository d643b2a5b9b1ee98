package setting

import (
	"errors"
	"strings"
	"time"
)

// Well-known setting keys, flattened as category.key strings.
const (
	KeyCurrencySymbol = "billing.currency_symbol"
	KeyTaxRate        = "billing.tax_rate"
	KeyGymName        = "general.gym_name"
)

// Setting holds a single category.key -> value entry.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Validate checks if the Setting has valid data.
// PRE: Setting struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Key must be a dotted category.key pair
func (s *Setting) Validate() error {
	category, key, ok := strings.Cut(s.Key, ".")
	if !ok || strings.TrimSpace(category) == "" || strings.TrimSpace(key) == "" {
		return errors.New("setting key must be of the form category.key")
	}
	return nil
}

// Category returns the part of the key before the first dot.
// INVARIANT: Setting fields are not mutated
func (s *Setting) Category() string {
	category, _, _ := strings.Cut(s.Key, ".")
	return category
}
