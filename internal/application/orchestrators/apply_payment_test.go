package orchestrators

import (
	"context"
	"testing"

	"clubdesk/internal/domain/fault"
	paymentdomain "clubdesk/internal/domain/payment"
	"clubdesk/internal/domain/subscription"
)

// mockPaymentApplier implements ApplyPaymentStore with the balance logic
// of the real store.
type mockPaymentApplier struct {
	sub   subscription.Subscription
	price float64
	calls int
}

func (m *mockPaymentApplier) ApplyPayment(_ context.Context, subscriptionID string, pay paymentdomain.Payment) (paymentdomain.Payment, subscription.Subscription, error) {
	m.calls++
	if subscriptionID != m.sub.ID {
		return paymentdomain.Payment{}, subscription.Subscription{}, fault.NotFound("subscription", subscriptionID)
	}
	if err := m.sub.ApplyPayment(pay.Amount, m.price, pay.PaymentDate); err != nil {
		return paymentdomain.Payment{}, subscription.Subscription{}, fault.Conflict(err.Error(), m.sub.ID)
	}
	pay.SubscriptionID = m.sub.ID
	pay.MemberID = m.sub.MemberID
	pay.ReceiptNumber = "REC-20250115-0001"
	return pay, m.sub, nil
}

func unpaidSubscription() subscription.Subscription {
	return subscription.Subscription{
		ID:            "s1",
		MemberID:      "m1",
		PlanID:        "p1",
		StartDate:     "2025-01-01",
		EndDate:       "2025-02-01",
		AmountPaid:    100,
		Status:        subscription.StatusActive,
		InvoiceStatus: subscription.InvoiceUnpaid,
	}
}

func TestExecuteApplyPayment_SettlesRemainingBalance(t *testing.T) {
	store := &mockPaymentApplier{sub: unpaidSubscription(), price: 200}
	deps := ApplyPaymentDeps{SubscriptionStore: store, GenerateID: fixedID, Now: fixedNow}

	result, err := ExecuteApplyPayment(context.Background(), ApplyPaymentInput{
		SubscriptionID: "s1",
		Amount:         100,
		Method:         paymentdomain.MethodCard,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Subscription.AmountPaid != 200 {
		t.Errorf("expected amount paid 200, got %v", result.Subscription.AmountPaid)
	}
	if result.Subscription.InvoiceStatus != subscription.InvoicePaid {
		t.Errorf("expected invoice paid, got %q", result.Subscription.InvoiceStatus)
	}
	if result.Subscription.PaidAt != "2025-01-15" {
		t.Errorf("expected paid_at set to the payment date, got %q", result.Subscription.PaidAt)
	}
	if result.Payment.ReceiptNumber == "" {
		t.Error("expected a receipt number on the recorded payment")
	}
}

func TestExecuteApplyPayment_PaidInvoiceRejected(t *testing.T) {
	sub := unpaidSubscription()
	sub.AmountPaid = 200
	sub.InvoiceStatus = subscription.InvoicePaid
	sub.PaidAt = "2025-01-10"
	store := &mockPaymentApplier{sub: sub, price: 200}
	deps := ApplyPaymentDeps{SubscriptionStore: store, GenerateID: fixedID, Now: fixedNow}

	_, err := ExecuteApplyPayment(context.Background(), ApplyPaymentInput{
		SubscriptionID: "s1",
		Amount:         10,
	}, deps)
	if !fault.IsConflict(err) {
		t.Errorf("expected Conflict on paid invoice, got %v", err)
	}
}

func TestExecuteApplyPayment_OverBalanceRejected(t *testing.T) {
	store := &mockPaymentApplier{sub: unpaidSubscription(), price: 200}
	deps := ApplyPaymentDeps{SubscriptionStore: store, GenerateID: fixedID, Now: fixedNow}

	_, err := ExecuteApplyPayment(context.Background(), ApplyPaymentInput{
		SubscriptionID: "s1",
		Amount:         150,
	}, deps)
	if !fault.IsConflict(err) {
		t.Errorf("expected Conflict for over-balance amount, got %v", err)
	}
}

func TestExecuteApplyPayment_InputValidation(t *testing.T) {
	store := &mockPaymentApplier{sub: unpaidSubscription(), price: 200}
	deps := ApplyPaymentDeps{SubscriptionStore: store, GenerateID: fixedID, Now: fixedNow}

	tests := []struct {
		name  string
		input ApplyPaymentInput
	}{
		{"missing subscription id", ApplyPaymentInput{Amount: 50}},
		{"zero amount", ApplyPaymentInput{SubscriptionID: "s1"}},
		{"negative amount", ApplyPaymentInput{SubscriptionID: "s1", Amount: -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteApplyPayment(context.Background(), tt.input, deps)
			if !fault.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
			if store.calls != 0 {
				t.Error("expected store untouched on invalid input")
			}
		})
	}
}
