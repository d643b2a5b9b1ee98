// Package subscription models the billing engine's central concept: a
// member's enrolment in a plan for a date range, with a derived paid/unpaid
// invoice state computed from cumulative payments against the plan price.
package subscription

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date wire format used across the store.
const DateLayout = "2006-01-02"

// PaidEpsilon is the tolerance for floating comparisons against the plan
// price. Amounts closer than this are considered equal.
const PaidEpsilon = 0.01

// Subscription status constants. Initial state is active; cancelled and
// expired are terminal.
const (
	StatusActive    = "active"
	StatusFrozen    = "frozen"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Invoice status constants.
const (
	InvoicePaid   = "paid"
	InvoiceUnpaid = "unpaid"
)

// Domain errors
var (
	ErrAlreadyCancelled   = errors.New("subscription is already cancelled")
	ErrAlreadyExpired     = errors.New("subscription has already expired")
	ErrNotFreezable       = errors.New("only active subscriptions can be frozen")
	ErrInvalidFreezeDays  = errors.New("freeze days must be positive")
	ErrInvoiceAlreadyPaid = errors.New("invoice is already fully paid")
	ErrExceedsBalance     = errors.New("payment exceeds the remaining balance")
	ErrInvalidAmount      = errors.New("payment amount must be positive")
)

// Subscription holds state for the concept.
type Subscription struct {
	ID            string
	MemberID      string
	PlanID        string
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
	AmountPaid    float64
	PaymentMethod string
	Status        string
	InvoiceStatus string
	PaidAt        string // YYYY-MM-DD, empty until the paid threshold is crossed
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks if the Subscription has valid data.
// PRE: Subscription struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: EndDate must not precede StartDate
func (s *Subscription) Validate() error {
	if s.MemberID == "" {
		return errors.New("subscription must be associated with a member")
	}
	if s.PlanID == "" {
		return errors.New("subscription must reference a plan")
	}
	start, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return errors.New("start date must be YYYY-MM-DD")
	}
	end, err := time.Parse(DateLayout, s.EndDate)
	if err != nil {
		return errors.New("end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return errors.New("end date cannot be before start date")
	}
	if s.AmountPaid < 0 {
		return errors.New("amount paid cannot be negative")
	}
	switch s.Status {
	case StatusActive, StatusFrozen, StatusCancelled, StatusExpired:
	default:
		return errors.New("status must be 'active', 'frozen', 'cancelled', or 'expired'")
	}
	if s.InvoiceStatus != InvoicePaid && s.InvoiceStatus != InvoiceUnpaid {
		return errors.New("invoice status must be 'paid' or 'unpaid'")
	}
	return nil
}

// IsTerminal returns true once no further status transitions are allowed.
// INVARIANT: Subscription fields are not mutated
func (s *Subscription) IsTerminal() bool {
	return s.Status == StatusCancelled || s.Status == StatusExpired
}

// IsPaid returns true if the invoice has been settled in full.
// INVARIANT: Subscription fields are not mutated
func (s *Subscription) IsPaid() bool {
	return s.InvoiceStatus == InvoicePaid
}

// Overlaps reports whether [s.StartDate, s.EndDate] intersects the other
// range. Both endpoints are inclusive: a subscription ending on the day
// another starts counts as an overlap.
// PRE: both subscriptions carry well-formed dates
// INVARIANT: Subscription fields are not mutated
func (s *Subscription) Overlaps(other *Subscription) bool {
	return !(s.EndDate < other.StartDate || s.StartDate > other.EndDate)
}

// SettleInvoice recomputes the invoice status from the cumulative amount
// paid against the plan price. PaidAt is set exactly once, to the date the
// paid threshold was first crossed; a zero-price plan is never marked paid.
// PRE: price is the owning plan's price, asOf is a YYYY-MM-DD date
// POST: InvoiceStatus reflects AmountPaid >= price within PaidEpsilon
func (s *Subscription) SettleInvoice(price float64, asOf string) {
	if price > 0 && s.AmountPaid >= price-PaidEpsilon {
		if s.InvoiceStatus != InvoicePaid {
			s.InvoiceStatus = InvoicePaid
			s.PaidAt = asOf
		}
		return
	}
	s.InvoiceStatus = InvoiceUnpaid
}

// ApplyPayment adds amount to the cumulative total and resettles the
// invoice.
// PRE: the invoice is unpaid; amount is positive and within the remaining
// balance (price - AmountPaid) up to PaidEpsilon
// POST: AmountPaid is increased; InvoiceStatus/PaidAt recomputed
func (s *Subscription) ApplyPayment(amount, price float64, asOf string) error {
	if s.IsPaid() {
		return ErrInvoiceAlreadyPaid
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > price-s.AmountPaid+PaidEpsilon {
		return ErrExceedsBalance
	}
	s.AmountPaid += amount
	s.SettleInvoice(price, asOf)
	return nil
}

// Freeze shifts the end date forward by freezeDays and marks the
// subscription frozen. There is no modeled transition back to active; the
// extended end date is the lasting effect.
// PRE: subscription is active, freezeDays > 0
// POST: EndDate moved forward by freezeDays, Status is frozen
func (s *Subscription) Freeze(freezeDays int) error {
	if s.Status != StatusActive {
		return ErrNotFreezable
	}
	if freezeDays <= 0 {
		return ErrInvalidFreezeDays
	}
	end, err := time.Parse(DateLayout, s.EndDate)
	if err != nil {
		return errors.New("end date must be YYYY-MM-DD")
	}
	s.EndDate = end.AddDate(0, 0, freezeDays).Format(DateLayout)
	s.Status = StatusFrozen
	return nil
}

// Cancel marks the subscription cancelled. Terminal: no later transition
// reopens the row.
// PRE: subscription is not already terminal
// POST: Status is cancelled
func (s *Subscription) Cancel() error {
	if s.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if s.Status == StatusExpired {
		return ErrAlreadyExpired
	}
	s.Status = StatusCancelled
	return nil
}

// Lapsed reports whether an active subscription's end date has passed.
// PRE: today is a YYYY-MM-DD date
// INVARIANT: Subscription fields are not mutated
func (s *Subscription) Lapsed(today string) bool {
	return s.Status == StatusActive && s.EndDate < today
}

// AddMonthsClamped returns t plus the given number of calendar months,
// clamping the day to the last valid day of the target month, so
// Jan 31 + 1 month yields Feb 28 (or Feb 29 in a leap year) rather than
// rolling over into March.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
