package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/subscription"
)

// CancelSubscriptionDeps holds dependencies for CancelSubscription.
type CancelSubscriptionDeps struct {
	SubscriptionStore SubscriptionStatusStore
	Now               func() time.Time // injectable for testing
}

// ExecuteCancelSubscription marks a subscription cancelled. The transition
// is terminal; cancelling an already cancelled or expired subscription is
// rejected with Conflict.
// POST: status is cancelled
func ExecuteCancelSubscription(ctx context.Context, subscriptionID string, deps CancelSubscriptionDeps) (subscription.Subscription, error) {
	if subscriptionID == "" {
		return subscription.Subscription{}, fault.Validation("subscription_id", "subscription id is required")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	sub, err := deps.SubscriptionStore.GetByID(ctx, subscriptionID)
	if err != nil {
		return subscription.Subscription{}, err
	}
	if err := sub.Cancel(); err != nil {
		return subscription.Subscription{}, fault.Conflict(err.Error(), sub.ID)
	}
	sub.UpdatedAt = now

	if err := deps.SubscriptionStore.Save(ctx, sub); err != nil {
		return subscription.Subscription{}, err
	}

	slog.Info("billing_event", "event", "subscription_cancelled",
		"subscription_id", sub.ID,
		"member_id", sub.MemberID)
	return sub, nil
}
