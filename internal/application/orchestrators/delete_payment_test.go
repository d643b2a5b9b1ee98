package orchestrators

import (
	"context"
	"testing"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/payment"
)

// mockPaymentDeleter implements DeletePaymentStore.
type mockPaymentDeleter struct {
	deleted []string
	err     error
}

func (m *mockPaymentDeleter) DeleteWithReversal(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func TestExecuteDeletePayment(t *testing.T) {
	store := &mockPaymentDeleter{}
	deps := DeletePaymentDeps{PaymentStore: store}

	if err := ExecuteDeletePayment(context.Background(), "pay1", deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "pay1" {
		t.Errorf("expected pay1 deleted, got %v", store.deleted)
	}
}

func TestExecuteDeletePayment_EmptyID(t *testing.T) {
	deps := DeletePaymentDeps{PaymentStore: &mockPaymentDeleter{}}

	if err := ExecuteDeletePayment(context.Background(), "", deps); !fault.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestExecuteDeletePayment_NotFoundSurfaces(t *testing.T) {
	store := &mockPaymentDeleter{err: fault.NotFound("payment", "missing")}
	deps := DeletePaymentDeps{PaymentStore: store}

	if err := ExecuteDeletePayment(context.Background(), "missing", deps); !fault.IsNotFound(err) {
		t.Errorf("expected NotFound passed through, got %v", err)
	}
}

// mockNoteEditor implements UpdatePaymentNotesStore.
type mockNoteEditor struct {
	payments map[string]payment.Payment
	notes    map[string]string
}

func (m *mockNoteEditor) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return payment.Payment{}, fault.NotFound("payment", id)
	}
	return p, nil
}

func (m *mockNoteEditor) UpdateNotes(_ context.Context, id, notes string) error {
	m.notes[id] = notes
	return nil
}

func TestExecuteUpdatePaymentNotes(t *testing.T) {
	store := &mockNoteEditor{
		payments: map[string]payment.Payment{"pay1": {ID: "pay1", Amount: 200}},
		notes:    map[string]string{},
	}

	input := UpdatePaymentNotesInput{PaymentID: "pay1", Notes: "cash drawer #2"}
	if err := ExecuteUpdatePaymentNotes(context.Background(), input, store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.notes["pay1"] != "cash drawer #2" {
		t.Errorf("expected notes updated, got %q", store.notes["pay1"])
	}
}

func TestExecuteUpdatePaymentNotes_UnknownPayment(t *testing.T) {
	store := &mockNoteEditor{payments: map[string]payment.Payment{}, notes: map[string]string{}}

	err := ExecuteUpdatePaymentNotes(context.Background(), UpdatePaymentNotesInput{PaymentID: "ghost"}, store)
	if !fault.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if len(store.notes) != 0 {
		t.Error("no notes should be written for an unknown payment")
	}
}
