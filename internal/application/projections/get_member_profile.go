package projections

import (
	"context"

	"clubdesk/internal/domain/attendance"
	"clubdesk/internal/domain/member"
	paymentdomain "clubdesk/internal/domain/payment"
	"clubdesk/internal/domain/subscription"
)

// ProfilePaymentStore defines the payment store interface needed by the
// member profile projection.
type ProfilePaymentStore interface {
	ListByMember(ctx context.Context, memberID string) ([]paymentdomain.Payment, error)
}

// ProfileAttendanceStore defines the attendance store interface needed by
// the member profile projection.
type ProfileAttendanceStore interface {
	ListByMember(ctx context.Context, memberID string, limit int) ([]attendance.Session, error)
}

// GetMemberProfileDeps holds dependencies for the member profile
// projection.
type GetMemberProfileDeps struct {
	MemberStore       MemberStore
	SubscriptionStore SubscriptionStore
	PaymentStore      ProfilePaymentStore
	AttendanceStore   ProfileAttendanceStore
}

// MemberProfileResult carries a member's full front-desk view.
type MemberProfileResult struct {
	Member        member.Member
	Subscriptions []subscription.Subscription
	Payments      []paymentdomain.Payment
	RecentVisits  []attendance.Session
}

// recentVisitLimit caps the attendance history on the profile view.
const recentVisitLimit = 20

// QueryGetMemberProfile assembles a member's subscriptions, payment
// history and recent visits.
// PRE: member exists
func QueryGetMemberProfile(ctx context.Context, memberID string, deps GetMemberProfileDeps) (MemberProfileResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, memberID)
	if err != nil {
		return MemberProfileResult{}, err
	}

	subs, err := deps.SubscriptionStore.ListByMember(ctx, memberID)
	if err != nil {
		return MemberProfileResult{}, err
	}
	payments, err := deps.PaymentStore.ListByMember(ctx, memberID)
	if err != nil {
		return MemberProfileResult{}, err
	}
	visits, err := deps.AttendanceStore.ListByMember(ctx, memberID, recentVisitLimit)
	if err != nil {
		return MemberProfileResult{}, err
	}

	return MemberProfileResult{
		Member:        m,
		Subscriptions: subs,
		Payments:      payments,
		RecentVisits:  visits,
	}, nil
}
