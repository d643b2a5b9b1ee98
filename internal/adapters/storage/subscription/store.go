package subscription

import (
	"context"

	paymentdomain "clubdesk/internal/domain/payment"
	domain "clubdesk/internal/domain/subscription"
)

// Store persists Subscription state. The mutating composite operations run
// inside a single transaction: the invariant checks, the row writes, and
// the linked payment insert either all commit or none do.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Subscription, error)
	Save(ctx context.Context, value domain.Subscription) error
	ListByMember(ctx context.Context, memberID string) ([]domain.Subscription, error)

	// CreateWithPayment atomically expires the member's lapsed active
	// subscriptions, verifies the single-unpaid and no-overlap invariants,
	// inserts the subscription, and, when pay is non-nil, generates a
	// receipt number and inserts the linked payment. today anchors the
	// member-scoped expiry sweep. Returns the receipt number, or "" when
	// no payment was recorded.
	CreateWithPayment(ctx context.Context, sub domain.Subscription, pay *paymentdomain.Payment, today string) (string, error)

	// ApplyPayment atomically re-reads the subscription, applies the
	// amount against the remaining balance, generates a receipt number,
	// inserts the payment, and updates the subscription's invoice state.
	ApplyPayment(ctx context.Context, subscriptionID string, pay paymentdomain.Payment) (paymentdomain.Payment, domain.Subscription, error)

	// ExpireLapsed transitions every active subscription whose end date
	// has passed to expired. Idempotent.
	ExpireLapsed(ctx context.Context, today string) (int, error)

	CountByStatus(ctx context.Context, status string) (int, error)
	CountUnpaid(ctx context.Context) (int, error)
	ListExpiringBetween(ctx context.Context, from, to string) ([]ExpiryRow, error)
	ListExpired(ctx context.Context, limit int) ([]ExpiryRow, error)
	PlanBreakdown(ctx context.Context) ([]PlanUsage, error)
}

// ExpiryRow is a subscription nearing or past its end date, joined with
// the member details needed for listings and notifications.
type ExpiryRow struct {
	SubscriptionID string
	MemberID       string
	MemberCode     string
	MemberName     string
	MemberEmail    string
	PlanName       string
	EndDate        string
}

// PlanUsage is the per-plan subscription count and collected revenue.
type PlanUsage struct {
	PlanID        string
	PlanName      string
	Subscriptions int
	Revenue       float64
}
