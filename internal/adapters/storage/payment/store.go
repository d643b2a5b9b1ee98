package payment

import (
	"context"

	domain "clubdesk/internal/domain/payment"
)

// Store persists Payment state. Rows are immutable apart from notes;
// deletion reverses the linked subscription's cumulative amount inside one
// transaction.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.Payment, error)
	ListBySubscription(ctx context.Context, subscriptionID string) ([]domain.Payment, error)
	UpdateNotes(ctx context.Context, id, notes string) error

	// DeleteWithReversal removes the payment and, when it is linked to a
	// subscription, subtracts its amount from the subscription's
	// amount_paid and recomputes the invoice status against the plan
	// price. Atomic.
	DeleteWithReversal(ctx context.Context, id string) error

	SumBetween(ctx context.Context, from, to string) (float64, error)
	SumByDay(ctx context.Context, from, to string) ([]RevenuePoint, error)
	SumByMonth(ctx context.Context, from, to string) ([]RevenuePoint, error)
}

// RevenuePoint is one bucket of a grouped revenue sum: Period is a
// YYYY-MM-DD day or a YYYY-MM month.
type RevenuePoint struct {
	Period string
	Total  float64
}
