package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clubdesk/internal/adapters/email"
	subscriptionstore "clubdesk/internal/adapters/storage/subscription"
	"clubdesk/internal/domain/subscription"
)

// NotifyExpiringStore lists subscriptions nearing their end date.
type NotifyExpiringStore interface {
	ListExpiringBetween(ctx context.Context, from, to string) ([]subscriptionstore.ExpiryRow, error)
}

// NotifyExpiringDeps holds dependencies for NotifyExpiring.
type NotifyExpiringDeps struct {
	SubscriptionStore NotifyExpiringStore
	Sender            email.Sender
	ClubName          string
	Now               func() time.Time // injectable for testing
}

// ExecuteNotifyExpiring emails every member whose subscription ends
// tomorrow. Members without an email address are skipped. Returns the
// number of notifications sent.
// POST: one email per expiring subscription with a reachable member
func ExecuteNotifyExpiring(ctx context.Context, deps NotifyExpiringDeps) (int, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	tomorrow := now.AddDate(0, 0, 1).Format(subscription.DateLayout)

	rows, err := deps.SubscriptionStore.ListExpiringBetween(ctx, tomorrow, tomorrow)
	if err != nil {
		return 0, err
	}

	var reqs []email.SendRequest
	for _, row := range rows {
		if row.MemberEmail == "" {
			continue
		}
		reqs = append(reqs, email.SendRequest{
			To:      []string{row.MemberEmail},
			Subject: fmt.Sprintf("%s: your %s membership expires tomorrow", deps.ClubName, row.PlanName),
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your <strong>%s</strong> membership ends on %s. Visit the front desk to renew and keep training without interruption.</p>",
				row.MemberName, row.PlanName, row.EndDate),
		})
	}
	if len(reqs) == 0 {
		return 0, nil
	}

	results, err := deps.Sender.SendBatch(ctx, reqs)
	if err != nil {
		return len(results), err
	}

	slog.Info("billing_event", "event", "expiry_notifications_sent", "count", len(results), "end_date", tomorrow)
	return len(results), nil
}

// StartExpiryNotifierWorker runs the expiry notification on an interval
// until stopCh is closed.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartExpiryNotifierWorker(deps NotifyExpiringDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := ExecuteNotifyExpiring(ctx, deps); err != nil {
					slog.Error("billing_event", "event", "expiry_notification_failed", "error", err)
				}
				cancel()
			case <-stopCh:
				return
			}
		}
	}()
}
