package plan

import (
	"errors"
	"strings"
	"time"
)

// Plan holds state for a subscription type: a priced, fixed-duration
// membership offering.
type Plan struct {
	ID             string
	NameAr         string
	NameEn         string
	DurationMonths int
	Price          float64
	IsActive       bool
	CreatedAt      time.Time
}

// Validate checks if the Plan has valid data.
// PRE: Plan struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: At least one name must be set, duration >= 1, price >= 0
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.NameAr) == "" && strings.TrimSpace(p.NameEn) == "" {
		return errors.New("plan name cannot be empty")
	}
	if p.DurationMonths < 1 {
		return errors.New("duration must be at least one month")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// Name returns the English name, falling back to the Arabic one.
// INVARIANT: Plan fields are not mutated
func (p *Plan) Name() string {
	if p.NameEn != "" {
		return p.NameEn
	}
	return p.NameAr
}
