package projections

import (
	"context"
	"time"

	memberstore "clubdesk/internal/adapters/storage/member"
	"clubdesk/internal/domain/member"
	"clubdesk/internal/domain/subscription"
)

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore       MemberStore
	SubscriptionStore SubscriptionStore
	PaymentStore      PaymentStore
	AttendanceStore   AttendanceStore
	Now               func() time.Time // injectable for testing
}

// DashboardResult carries the front-desk overview numbers.
type DashboardResult struct {
	ActiveMembers       int
	InactiveMembers     int
	ActiveSubscriptions int
	FrozenSubscriptions int
	UnpaidInvoices      int
	ExpiringThisWeek    int
	VisitsToday         int
	RevenueToday        float64
}

// QueryGetDashboard assembles the overview counters. The lazy expiry sweep
// runs first so the status counts never include a lapsed subscription
// that no one has touched since its end date.
// POST: counts reflect the post-sweep state as of Now
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	today := now.Format(subscription.DateLayout)

	if _, err := deps.SubscriptionStore.ExpireLapsed(ctx, today); err != nil {
		return DashboardResult{}, err
	}

	var result DashboardResult
	var err error

	if result.ActiveMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{Status: member.StatusActive}); err != nil {
		return DashboardResult{}, err
	}
	if result.InactiveMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{Status: member.StatusInactive}); err != nil {
		return DashboardResult{}, err
	}
	if result.ActiveSubscriptions, err = deps.SubscriptionStore.CountByStatus(ctx, subscription.StatusActive); err != nil {
		return DashboardResult{}, err
	}
	if result.FrozenSubscriptions, err = deps.SubscriptionStore.CountByStatus(ctx, subscription.StatusFrozen); err != nil {
		return DashboardResult{}, err
	}
	if result.UnpaidInvoices, err = deps.SubscriptionStore.CountUnpaid(ctx); err != nil {
		return DashboardResult{}, err
	}

	weekOut := now.AddDate(0, 0, 7).Format(subscription.DateLayout)
	expiring, err := deps.SubscriptionStore.ListExpiringBetween(ctx, today, weekOut)
	if err != nil {
		return DashboardResult{}, err
	}
	result.ExpiringThisWeek = len(expiring)

	if result.VisitsToday, err = deps.AttendanceStore.CountBetween(ctx, today, today); err != nil {
		return DashboardResult{}, err
	}
	if result.RevenueToday, err = deps.PaymentStore.SumBetween(ctx, today, today); err != nil {
		return DashboardResult{}, err
	}

	return result, nil
}
