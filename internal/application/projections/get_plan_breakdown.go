package projections

import (
	"context"

	subscriptionstore "clubdesk/internal/adapters/storage/subscription"
)

// GetPlanBreakdownDeps holds dependencies for the plan breakdown
// projection.
type GetPlanBreakdownDeps struct {
	SubscriptionStore SubscriptionStore
}

// QueryGetPlanBreakdown returns the per-plan subscription count and
// collected revenue. Cancelled subscriptions are excluded; plans with no
// takers still appear with zero counts.
func QueryGetPlanBreakdown(ctx context.Context, deps GetPlanBreakdownDeps) ([]subscriptionstore.PlanUsage, error) {
	return deps.SubscriptionStore.PlanBreakdown(ctx)
}
