package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/subscription"
)

// SubscriptionStatusStore defines the subscription store interface for
// status transitions.
type SubscriptionStatusStore interface {
	GetByID(ctx context.Context, id string) (subscription.Subscription, error)
	Save(ctx context.Context, value subscription.Subscription) error
}

// FreezeSubscriptionInput carries input for the freeze orchestrator.
type FreezeSubscriptionInput struct {
	SubscriptionID string
	FreezeDays     int
}

// FreezeSubscriptionDeps holds dependencies for FreezeSubscription.
type FreezeSubscriptionDeps struct {
	SubscriptionStore SubscriptionStatusStore
	Now               func() time.Time // injectable for testing
}

// ExecuteFreezeSubscription pauses an active subscription, pushing its end
// date out by the freeze days. No transition back to active is modeled;
// the extended end date is the lasting effect.
// PRE: subscription is active, FreezeDays > 0
// POST: end date moved forward by FreezeDays, status frozen; no other
// field changes
func ExecuteFreezeSubscription(ctx context.Context, input FreezeSubscriptionInput, deps FreezeSubscriptionDeps) (subscription.Subscription, error) {
	if input.SubscriptionID == "" {
		return subscription.Subscription{}, fault.Validation("subscription_id", "subscription id is required")
	}
	if input.FreezeDays <= 0 {
		return subscription.Subscription{}, fault.Validation("freeze_days", "freeze days must be positive")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	sub, err := deps.SubscriptionStore.GetByID(ctx, input.SubscriptionID)
	if err != nil {
		return subscription.Subscription{}, err
	}
	if err := sub.Freeze(input.FreezeDays); err != nil {
		if errors.Is(err, subscription.ErrNotFreezable) {
			return subscription.Subscription{}, fault.Conflict(err.Error(), sub.ID)
		}
		return subscription.Subscription{}, fault.Validation("freeze_days", err.Error())
	}
	sub.UpdatedAt = now

	if err := deps.SubscriptionStore.Save(ctx, sub); err != nil {
		return subscription.Subscription{}, err
	}

	slog.Info("billing_event", "event", "subscription_frozen",
		"subscription_id", sub.ID,
		"member_id", sub.MemberID,
		"freeze_days", input.FreezeDays,
		"end_date", sub.EndDate)
	return sub, nil
}
