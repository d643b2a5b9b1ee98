package orchestrators

import (
	"context"
	"log/slog"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/payment"
)

// UpdatePaymentNotesStore defines the store interface for note edits.
type UpdatePaymentNotesStore interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	UpdateNotes(ctx context.Context, id, notes string) error
}

// UpdatePaymentNotesInput carries input for the note-edit orchestrator.
type UpdatePaymentNotesInput struct {
	PaymentID string
	Notes     string
}

// ExecuteUpdatePaymentNotes replaces the free-text notes on a payment.
// Notes are the only mutable field on a payment row; amounts and receipt
// numbers never change after the fact.
// PRE: payment exists
// POST: only the notes column changed
func ExecuteUpdatePaymentNotes(ctx context.Context, input UpdatePaymentNotesInput, store UpdatePaymentNotesStore) error {
	if input.PaymentID == "" {
		return fault.Validation("payment_id", "payment id is required")
	}

	p, err := store.GetByID(ctx, input.PaymentID)
	if err != nil {
		return err
	}
	if err := store.UpdateNotes(ctx, p.ID, input.Notes); err != nil {
		return err
	}

	slog.Info("billing_event", "event", "payment_notes_updated", "payment_id", p.ID)
	return nil
}
