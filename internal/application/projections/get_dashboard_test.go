package projections

import (
	"context"
	"testing"
	"time"

	attendancestore "clubdesk/internal/adapters/storage/attendance"
	memberstore "clubdesk/internal/adapters/storage/member"
	paymentstore "clubdesk/internal/adapters/storage/payment"
	subscriptionstore "clubdesk/internal/adapters/storage/subscription"
	domainmember "clubdesk/internal/domain/member"
	domainsubscription "clubdesk/internal/domain/subscription"
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
}

// mockMemberCounts implements MemberStore for the dashboard.
type mockMemberCounts struct {
	byStatus map[string]int
}

func (m *mockMemberCounts) GetByID(_ context.Context, _ string) (domainmember.Member, error) {
	return domainmember.Member{}, nil
}

func (m *mockMemberCounts) List(_ context.Context, _ memberstore.ListFilter) ([]domainmember.Member, error) {
	return nil, nil
}

func (m *mockMemberCounts) Count(_ context.Context, filter memberstore.ListFilter) (int, error) {
	return m.byStatus[filter.Status], nil
}

func (m *mockMemberCounts) Search(_ context.Context, _ string, _ int) ([]domainmember.Member, error) {
	return nil, nil
}

// mockSubscriptionCounts implements SubscriptionStore for the dashboard,
// recording the sweep call.
type mockSubscriptionCounts struct {
	byStatus   map[string]int
	unpaid     int
	expiring   []subscriptionstore.ExpiryRow
	expired    []subscriptionstore.ExpiryRow
	listedFrom string
	listedTo   string
	expiredLim int
	sweptToday string
}

func (m *mockSubscriptionCounts) ListByMember(_ context.Context, _ string) ([]domainsubscription.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionCounts) CountByStatus(_ context.Context, status string) (int, error) {
	return m.byStatus[status], nil
}

func (m *mockSubscriptionCounts) CountUnpaid(_ context.Context) (int, error) {
	return m.unpaid, nil
}

func (m *mockSubscriptionCounts) ListExpiringBetween(_ context.Context, from, to string) ([]subscriptionstore.ExpiryRow, error) {
	m.listedFrom, m.listedTo = from, to
	return m.expiring, nil
}

func (m *mockSubscriptionCounts) ListExpired(_ context.Context, limit int) ([]subscriptionstore.ExpiryRow, error) {
	m.expiredLim = limit
	return m.expired, nil
}

func (m *mockSubscriptionCounts) PlanBreakdown(_ context.Context) ([]subscriptionstore.PlanUsage, error) {
	return nil, nil
}

func (m *mockSubscriptionCounts) ExpireLapsed(_ context.Context, today string) (int, error) {
	m.sweptToday = today
	return 0, nil
}

// mockRevenue implements PaymentStore.
type mockRevenue struct {
	total float64
}

func (m *mockRevenue) SumBetween(_ context.Context, _, _ string) (float64, error) {
	return m.total, nil
}

func (m *mockRevenue) SumByDay(_ context.Context, _, _ string) ([]paymentstore.RevenuePoint, error) {
	return nil, nil
}

func (m *mockRevenue) SumByMonth(_ context.Context, _, _ string) ([]paymentstore.RevenuePoint, error) {
	return nil, nil
}

// mockVisits implements AttendanceStore.
type mockVisits struct {
	count int
}

func (m *mockVisits) CountBetween(_ context.Context, _, _ string) (int, error) {
	return m.count, nil
}

func (m *mockVisits) CountByDay(_ context.Context, _, _ string) ([]attendancestore.DayCount, error) {
	return nil, nil
}

func TestQueryGetDashboard(t *testing.T) {
	subs := &mockSubscriptionCounts{
		byStatus: map[string]int{"active": 12, "frozen": 2},
		unpaid:   3,
		expiring: []subscriptionstore.ExpiryRow{{SubscriptionID: "s1"}, {SubscriptionID: "s2"}},
	}
	deps := GetDashboardDeps{
		MemberStore:       &mockMemberCounts{byStatus: map[string]int{"active": 40, "inactive": 5}},
		SubscriptionStore: subs,
		PaymentStore:      &mockRevenue{total: 650},
		AttendanceStore:   &mockVisits{count: 18},
		Now:               fixedNow,
	}

	result, err := QueryGetDashboard(context.Background(), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subs.sweptToday != "2025-01-15" {
		t.Errorf("expected the sweep to run for today first, got %q", subs.sweptToday)
	}
	if result.ActiveMembers != 40 || result.InactiveMembers != 5 {
		t.Errorf("unexpected member counts: %+v", result)
	}
	if result.ActiveSubscriptions != 12 || result.FrozenSubscriptions != 2 {
		t.Errorf("unexpected subscription counts: %+v", result)
	}
	if result.UnpaidInvoices != 3 {
		t.Errorf("expected 3 unpaid invoices, got %d", result.UnpaidInvoices)
	}
	if result.ExpiringThisWeek != 2 {
		t.Errorf("expected 2 expiring, got %d", result.ExpiringThisWeek)
	}
	if result.VisitsToday != 18 {
		t.Errorf("expected 18 visits, got %d", result.VisitsToday)
	}
	if result.RevenueToday != 650 {
		t.Errorf("expected revenue 650, got %v", result.RevenueToday)
	}
}
