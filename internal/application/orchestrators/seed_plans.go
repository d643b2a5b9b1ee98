package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/plan"

	"github.com/google/uuid"
)

// SeedPlansStore defines the plan store interface for seeding.
type SeedPlansStore interface {
	Save(ctx context.Context, value plan.Plan) error
	List(ctx context.Context, activeOnly bool) ([]plan.Plan, error)
}

// SeedPlansDeps holds dependencies for SeedPlans.
type SeedPlansDeps struct {
	PlanStore  SeedPlansStore
	GenerateID func() string    // injectable for testing
	Now        func() time.Time // injectable for testing
}

// defaultPlans are the offerings created on an empty install.
var defaultPlans = []plan.Plan{
	{NameAr: "شهري", NameEn: "Monthly", DurationMonths: 1, Price: 200, IsActive: true},
	{NameAr: "ربع سنوي", NameEn: "Quarterly", DurationMonths: 3, Price: 540, IsActive: true},
	{NameAr: "نصف سنوي", NameEn: "Half-yearly", DurationMonths: 6, Price: 1020, IsActive: true},
	{NameAr: "سنوي", NameEn: "Yearly", DurationMonths: 12, Price: 1920, IsActive: true},
}

// ExecuteSeedPlans creates the default plans when none exist yet. Called
// on every startup; a no-op once any plan is present.
// POST: at least one plan exists
func ExecuteSeedPlans(ctx context.Context, deps SeedPlansDeps) error {
	existing, err := deps.PlanStore.List(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	generateID := uuid.NewString
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	for _, p := range defaultPlans {
		p.ID = generateID()
		p.CreatedAt = now
		if err := p.Validate(); err != nil {
			return fault.Validation("", err.Error())
		}
		if err := deps.PlanStore.Save(ctx, p); err != nil {
			return err
		}
	}
	slog.Info("billing_event", "event", "plans_seeded", "count", len(defaultPlans))
	return nil
}
