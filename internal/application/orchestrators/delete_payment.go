package orchestrators

import (
	"context"
	"log/slog"

	"clubdesk/internal/domain/fault"
)

// DeletePaymentStore defines the payment store interface for deletion.
type DeletePaymentStore interface {
	DeleteWithReversal(ctx context.Context, id string) error
}

// DeletePaymentDeps holds dependencies for DeletePayment.
type DeletePaymentDeps struct {
	PaymentStore DeletePaymentStore
}

// ExecuteDeletePayment removes a recorded payment. When the payment is
// linked to a subscription, its amount is subtracted from the
// subscription's cumulative total and the invoice status recomputed, in
// the same transaction as the delete. Receipt numbers are never reissued.
// PRE: payment exists
// POST: payment row gone, linked subscription's amount_paid reduced
func ExecuteDeletePayment(ctx context.Context, paymentID string, deps DeletePaymentDeps) error {
	if paymentID == "" {
		return fault.Validation("payment_id", "payment id is required")
	}
	if err := deps.PaymentStore.DeleteWithReversal(ctx, paymentID); err != nil {
		return err
	}
	slog.Info("billing_event", "event", "payment_deleted", "payment_id", paymentID)
	return nil
}
