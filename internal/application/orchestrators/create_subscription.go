package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/member"
	paymentdomain "clubdesk/internal/domain/payment"
	"clubdesk/internal/domain/plan"
	"clubdesk/internal/domain/subscription"

	"github.com/google/uuid"
)

// CreateSubscriptionMemberStore resolves the subscribing member.
type CreateSubscriptionMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// CreateSubscriptionPlanStore resolves the plan being subscribed to.
type CreateSubscriptionPlanStore interface {
	GetByID(ctx context.Context, id string) (plan.Plan, error)
}

// CreateSubscriptionStore persists the subscription and its opening payment
// in one atomic unit, enforcing the period and invoice invariants.
type CreateSubscriptionStore interface {
	CreateWithPayment(ctx context.Context, sub subscription.Subscription, pay *paymentdomain.Payment, today string) (string, error)
}

// CreateSubscriptionInput carries input for the create-subscription
// orchestrator.
type CreateSubscriptionInput struct {
	MemberID      string
	PlanID        string
	AmountPaid    float64
	PaymentMethod string
	StartDate     string // optional, defaults to today
	Notes         string
	CreatedBy     string
}

// CreateSubscriptionResult is the created subscription plus the receipt
// number of the opening payment, if one was recorded.
type CreateSubscriptionResult struct {
	Subscription  subscription.Subscription
	ReceiptNumber string
}

// CreateSubscriptionDeps holds dependencies for CreateSubscription.
type CreateSubscriptionDeps struct {
	MemberStore       CreateSubscriptionMemberStore
	PlanStore         CreateSubscriptionPlanStore
	SubscriptionStore CreateSubscriptionStore
	GenerateID        func() string    // injectable for testing
	Now               func() time.Time // injectable for testing
}

// ExecuteCreateSubscription enrols a member in a plan. The end date is the
// start date plus the plan's duration with the day clamped to the last
// valid day of the target month. The invoice is settled against the plan
// price up-front, and an opening payment row is written when the paid
// amount is above the epsilon. The store rejects overlapping periods and a
// second unpaid invoice for the same member, after lazily expiring the
// member's lapsed subscriptions.
// PRE: member exists; plan exists and is active; AmountPaid >= 0
// POST: subscription persisted atomically with its payment, or nothing
func ExecuteCreateSubscription(ctx context.Context, input CreateSubscriptionInput, deps CreateSubscriptionDeps) (CreateSubscriptionResult, error) {
	if input.MemberID == "" {
		return CreateSubscriptionResult{}, fault.Validation("member_id", "member id is required")
	}
	if input.PlanID == "" {
		return CreateSubscriptionResult{}, fault.Validation("plan_id", "plan id is required")
	}
	if input.AmountPaid < 0 {
		return CreateSubscriptionResult{}, fault.Validation("amount_paid", "amount paid cannot be negative")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	generateID := uuid.NewString
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}
	today := now.Format(subscription.DateLayout)

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return CreateSubscriptionResult{}, err
	}

	p, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil {
		return CreateSubscriptionResult{}, err
	}
	if !p.IsActive {
		return CreateSubscriptionResult{}, fault.NotFound("plan", input.PlanID)
	}

	startDate := input.StartDate
	if startDate == "" {
		startDate = today
	}
	start, err := time.Parse(subscription.DateLayout, startDate)
	if err != nil {
		return CreateSubscriptionResult{}, fault.Validation("start_date", "start date must be YYYY-MM-DD")
	}
	endDate := subscription.AddMonthsClamped(start, p.DurationMonths).Format(subscription.DateLayout)

	sub := subscription.Subscription{
		ID:            generateID(),
		MemberID:      m.ID,
		PlanID:        p.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		AmountPaid:    input.AmountPaid,
		PaymentMethod: input.PaymentMethod,
		Status:        subscription.StatusActive,
		InvoiceStatus: subscription.InvoiceUnpaid,
		Notes:         input.Notes,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
	}
	sub.SettleInvoice(p.Price, startDate)
	if err := sub.Validate(); err != nil {
		return CreateSubscriptionResult{}, fault.Validation("", err.Error())
	}

	var pay *paymentdomain.Payment
	if input.AmountPaid > subscription.PaidEpsilon {
		pay = &paymentdomain.Payment{
			ID:             generateID(),
			SubscriptionID: sub.ID,
			MemberID:       m.ID,
			Amount:         input.AmountPaid,
			Method:         input.PaymentMethod,
			PaymentDate:    today,
			Notes:          input.Notes,
			CreatedBy:      input.CreatedBy,
			CreatedAt:      now,
		}
	}

	receipt, err := deps.SubscriptionStore.CreateWithPayment(ctx, sub, pay, today)
	if err != nil {
		return CreateSubscriptionResult{}, err
	}

	slog.Info("billing_event", "event", "subscription_created",
		"subscription_id", sub.ID,
		"member_id", m.ID,
		"plan_id", p.ID,
		"start_date", sub.StartDate,
		"end_date", sub.EndDate,
		"invoice_status", sub.InvoiceStatus,
		"receipt_number", receipt)
	return CreateSubscriptionResult{Subscription: sub, ReceiptNumber: receipt}, nil
}
