package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/subscription"
)

// ExpireSubscriptionsStore defines the subscription store interface for the
// batch expiry sweep.
type ExpireSubscriptionsStore interface {
	ExpireLapsed(ctx context.Context, today string) (int, error)
}

// ExpireSubscriptionsDeps holds dependencies for ExpireSubscriptions.
type ExpireSubscriptionsDeps struct {
	SubscriptionStore ExpireSubscriptionsStore
	Now               func() time.Time // injectable for testing
}

// ExecuteExpireSubscriptions transitions every active subscription whose
// end date has passed to expired. Idempotent: a second run with nothing
// lapsed updates zero rows.
// POST: no active subscription has end_date < today
func ExecuteExpireSubscriptions(ctx context.Context, deps ExpireSubscriptionsDeps) (int, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	today := now.Format(subscription.DateLayout)

	n, err := deps.SubscriptionStore.ExpireLapsed(ctx, today)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("billing_event", "event", "subscriptions_expired", "count", n, "as_of", today)
	}
	return n, nil
}

// StartExpirySweepWorker runs the expiry sweep on an interval until stopCh
// is closed. Errors are logged and the next tick retries.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartExpirySweepWorker(deps ExpireSubscriptionsDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if _, err := ExecuteExpireSubscriptions(ctx, deps); err != nil {
					slog.Error("billing_event", "event", "expiry_sweep_failed", "error", err)
				}
				cancel()
			case <-stopCh:
				return
			}
		}
	}()
}
