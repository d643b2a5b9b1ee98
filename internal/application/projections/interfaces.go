package projections

import (
	"context"

	attendancestore "clubdesk/internal/adapters/storage/attendance"
	memberstore "clubdesk/internal/adapters/storage/member"
	paymentstore "clubdesk/internal/adapters/storage/payment"
	subscriptionstore "clubdesk/internal/adapters/storage/subscription"
	domainmember "clubdesk/internal/domain/member"
	domainsubscription "clubdesk/internal/domain/subscription"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainmember.Member, error)
	List(ctx context.Context, filter memberstore.ListFilter) ([]domainmember.Member, error)
	Count(ctx context.Context, filter memberstore.ListFilter) (int, error)
	Search(ctx context.Context, query string, limit int) ([]domainmember.Member, error)
}

// SubscriptionStore interface for subscription queries.
type SubscriptionStore interface {
	ListByMember(ctx context.Context, memberID string) ([]domainsubscription.Subscription, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountUnpaid(ctx context.Context) (int, error)
	ListExpiringBetween(ctx context.Context, from, to string) ([]subscriptionstore.ExpiryRow, error)
	ListExpired(ctx context.Context, limit int) ([]subscriptionstore.ExpiryRow, error)
	PlanBreakdown(ctx context.Context) ([]subscriptionstore.PlanUsage, error)
	ExpireLapsed(ctx context.Context, today string) (int, error)
}

// PaymentStore interface for revenue queries.
type PaymentStore interface {
	SumBetween(ctx context.Context, from, to string) (float64, error)
	SumByDay(ctx context.Context, from, to string) ([]paymentstore.RevenuePoint, error)
	SumByMonth(ctx context.Context, from, to string) ([]paymentstore.RevenuePoint, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	CountBetween(ctx context.Context, from, to string) (int, error)
	CountByDay(ctx context.Context, from, to string) ([]attendancestore.DayCount, error)
}
