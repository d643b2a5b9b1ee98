package projections

import (
	"context"
	"time"

	subscriptionstore "clubdesk/internal/adapters/storage/subscription"
	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/subscription"
)

// GetExpiringQuery carries input for the expiring projection.
type GetExpiringQuery struct {
	WithinDays int
}

// GetExpiringDeps holds dependencies for the expiring projection.
type GetExpiringDeps struct {
	SubscriptionStore SubscriptionStore
	Now               func() time.Time // injectable for testing
}

// QueryGetExpiring lists subscriptions whose end date falls within the
// next WithinDays days, today included. Only active and frozen
// subscriptions qualify.
// PRE: WithinDays > 0
func QueryGetExpiring(ctx context.Context, query GetExpiringQuery, deps GetExpiringDeps) ([]subscriptionstore.ExpiryRow, error) {
	if query.WithinDays <= 0 {
		return nil, fault.Validation("within_days", "within days must be positive")
	}
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	from := now.Format(subscription.DateLayout)
	to := now.AddDate(0, 0, query.WithinDays).Format(subscription.DateLayout)
	return deps.SubscriptionStore.ListExpiringBetween(ctx, from, to)
}

// QueryGetExpired lists subscriptions that have already lapsed, most
// recent first. Limit defaults to 50.
func QueryGetExpired(ctx context.Context, limit int, deps GetExpiringDeps) ([]subscriptionstore.ExpiryRow, error) {
	if limit <= 0 {
		limit = 50
	}
	return deps.SubscriptionStore.ListExpired(ctx, limit)
}
