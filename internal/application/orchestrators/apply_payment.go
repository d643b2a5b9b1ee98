package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	paymentdomain "clubdesk/internal/domain/payment"
	"clubdesk/internal/domain/subscription"

	"github.com/google/uuid"
)

// ApplyPaymentStore records a payment against a subscription atomically.
type ApplyPaymentStore interface {
	ApplyPayment(ctx context.Context, subscriptionID string, pay paymentdomain.Payment) (paymentdomain.Payment, subscription.Subscription, error)
}

// ApplyPaymentInput carries input for the apply-payment orchestrator.
type ApplyPaymentInput struct {
	SubscriptionID string
	Amount         float64
	Method         string
	Notes          string
	CreatedBy      string
}

// ApplyPaymentResult is the recorded payment and the subscription's state
// after the amount was applied.
type ApplyPaymentResult struct {
	Payment      paymentdomain.Payment
	Subscription subscription.Subscription
}

// ApplyPaymentDeps holds dependencies for ApplyPayment.
type ApplyPaymentDeps struct {
	SubscriptionStore ApplyPaymentStore
	GenerateID        func() string    // injectable for testing
	Now               func() time.Time // injectable for testing
}

// ExecuteApplyPayment records a further payment against an unpaid invoice.
// The store re-reads the subscription inside the transaction, so a paid
// invoice or an over-balance amount is rejected with Conflict even under
// concurrent payments.
// PRE: Amount > 0
// POST: payment row inserted and amount_paid/invoice_status/paid_at
// updated, or nothing
func ExecuteApplyPayment(ctx context.Context, input ApplyPaymentInput, deps ApplyPaymentDeps) (ApplyPaymentResult, error) {
	if input.SubscriptionID == "" {
		return ApplyPaymentResult{}, fault.Validation("subscription_id", "subscription id is required")
	}
	if input.Amount <= 0 {
		return ApplyPaymentResult{}, fault.Validation("amount", "payment amount must be positive")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	generateID := uuid.NewString
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	pay := paymentdomain.Payment{
		ID:             generateID(),
		SubscriptionID: input.SubscriptionID,
		Amount:         input.Amount,
		Method:         input.Method,
		PaymentDate:    now.Format(subscription.DateLayout),
		Notes:          input.Notes,
		CreatedBy:      input.CreatedBy,
		CreatedAt:      now,
	}

	recorded, sub, err := deps.SubscriptionStore.ApplyPayment(ctx, input.SubscriptionID, pay)
	if err != nil {
		return ApplyPaymentResult{}, err
	}

	slog.Info("billing_event", "event", "payment_applied",
		"subscription_id", sub.ID,
		"member_id", sub.MemberID,
		"amount", recorded.Amount,
		"receipt_number", recorded.ReceiptNumber,
		"invoice_status", sub.InvoiceStatus)
	return ApplyPaymentResult{Payment: recorded, Subscription: sub}, nil
}
