package projections

import (
	"context"
	"time"

	paymentstore "clubdesk/internal/adapters/storage/payment"
	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/subscription"
)

// GetRevenueQuery carries input for the revenue projection. Dates are
// inclusive YYYY-MM-DD bounds.
type GetRevenueQuery struct {
	From string
	To   string
}

// GetRevenueDeps holds dependencies for the revenue projection.
type GetRevenueDeps struct {
	PaymentStore PaymentStore
}

// RevenueResult carries the revenue sums for a date range.
type RevenueResult struct {
	From    string
	To      string
	Total   float64
	ByDay   []paymentstore.RevenuePoint
	ByMonth []paymentstore.RevenuePoint
}

// QueryGetRevenue sums recorded payments over [From, To], with per-day
// and per-month breakdowns. Deleted payments are gone from every sum.
// PRE: From <= To
func QueryGetRevenue(ctx context.Context, query GetRevenueQuery, deps GetRevenueDeps) (RevenueResult, error) {
	if _, err := time.Parse(subscription.DateLayout, query.From); err != nil {
		return RevenueResult{}, fault.Validation("from", "from must be YYYY-MM-DD")
	}
	if _, err := time.Parse(subscription.DateLayout, query.To); err != nil {
		return RevenueResult{}, fault.Validation("to", "to must be YYYY-MM-DD")
	}
	if query.From > query.To {
		return RevenueResult{}, fault.Validation("from", "from cannot be after to")
	}

	result := RevenueResult{From: query.From, To: query.To}
	var err error

	if result.Total, err = deps.PaymentStore.SumBetween(ctx, query.From, query.To); err != nil {
		return RevenueResult{}, err
	}
	if result.ByDay, err = deps.PaymentStore.SumByDay(ctx, query.From, query.To); err != nil {
		return RevenueResult{}, err
	}
	if result.ByMonth, err = deps.PaymentStore.SumByMonth(ctx, query.From, query.To); err != nil {
		return RevenueResult{}, err
	}
	return result, nil
}
