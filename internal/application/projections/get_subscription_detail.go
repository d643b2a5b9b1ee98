package projections

import (
	"context"

	paymentdomain "clubdesk/internal/domain/payment"
	"clubdesk/internal/domain/plan"
	"clubdesk/internal/domain/subscription"
)

// DetailSubscriptionStore resolves the subscription under inspection.
type DetailSubscriptionStore interface {
	GetByID(ctx context.Context, id string) (subscription.Subscription, error)
}

// DetailPlanStore resolves the subscription's plan.
type DetailPlanStore interface {
	GetByID(ctx context.Context, id string) (plan.Plan, error)
}

// DetailPaymentStore lists the payments recorded against the subscription.
type DetailPaymentStore interface {
	ListBySubscription(ctx context.Context, subscriptionID string) ([]paymentdomain.Payment, error)
}

// GetSubscriptionDetailDeps holds dependencies for the detail projection.
type GetSubscriptionDetailDeps struct {
	SubscriptionStore DetailSubscriptionStore
	PlanStore         DetailPlanStore
	PaymentStore      DetailPaymentStore
}

// SubscriptionDetailResult is one subscription with its plan, payment
// history and remaining balance.
type SubscriptionDetailResult struct {
	Subscription subscription.Subscription
	Plan         plan.Plan
	Payments     []paymentdomain.Payment
	Balance      float64
}

// QueryGetSubscriptionDetail assembles the billing view of a single
// subscription.
// POST: Balance = plan price - amount paid, floored at zero
func QueryGetSubscriptionDetail(ctx context.Context, subscriptionID string, deps GetSubscriptionDetailDeps) (SubscriptionDetailResult, error) {
	sub, err := deps.SubscriptionStore.GetByID(ctx, subscriptionID)
	if err != nil {
		return SubscriptionDetailResult{}, err
	}
	p, err := deps.PlanStore.GetByID(ctx, sub.PlanID)
	if err != nil {
		return SubscriptionDetailResult{}, err
	}
	payments, err := deps.PaymentStore.ListBySubscription(ctx, sub.ID)
	if err != nil {
		return SubscriptionDetailResult{}, err
	}

	balance := p.Price - sub.AmountPaid
	if balance < 0 {
		balance = 0
	}
	return SubscriptionDetailResult{
		Subscription: sub,
		Plan:         p,
		Payments:     payments,
		Balance:      balance,
	}, nil
}
