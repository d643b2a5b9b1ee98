package payment_test

import (
	"testing"
	"time"

	"clubdesk/internal/domain/payment"
)

var day = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// TestNextReceiptNumber tests daily-reset sequential receipt generation.
func TestNextReceiptNumber(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		want    string
		wantErr bool
	}{
		{name: "first of the day", last: "", want: "REC-20250115-0001"},
		{name: "increment", last: "REC-20250115-0001", want: "REC-20250115-0002"},
		{name: "mid sequence", last: "REC-20250115-0099", want: "REC-20250115-0100"},
		{name: "past padding width", last: "REC-20250115-9999", want: "REC-20250115-10000"},
		{name: "previous day receipt rejected", last: "REC-20250114-0005", wantErr: true},
		{name: "garbage", last: "RCPT-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := payment.NextReceiptNumber(day, tt.last)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NextReceiptNumber(%q) error = %v, wantErr %v", tt.last, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NextReceiptNumber(%q) = %q, want %q", tt.last, got, tt.want)
			}
		})
	}
}

// TestReceiptDayPrefix tests the date-stamped prefix format.
func TestReceiptDayPrefix(t *testing.T) {
	if got := payment.ReceiptDayPrefix(day); got != "REC-20250115-" {
		t.Errorf("ReceiptDayPrefix() = %q, want REC-20250115-", got)
	}
}

// TestPaymentValidation tests validation of Payment.
func TestPaymentValidation(t *testing.T) {
	valid := payment.Payment{
		MemberID:      "m1",
		Amount:        200,
		Method:        payment.MethodCash,
		PaymentDate:   "2025-01-15",
		ReceiptNumber: "REC-20250115-0001",
	}

	tests := []struct {
		name    string
		mutate  func(*payment.Payment)
		wantErr bool
	}{
		{name: "valid", mutate: func(*payment.Payment) {}, wantErr: false},
		{name: "missing member", mutate: func(p *payment.Payment) { p.MemberID = "" }, wantErr: true},
		{name: "zero amount", mutate: func(p *payment.Payment) { p.Amount = 0 }, wantErr: true},
		{name: "negative amount", mutate: func(p *payment.Payment) { p.Amount = -5 }, wantErr: true},
		{name: "missing receipt", mutate: func(p *payment.Payment) { p.ReceiptNumber = "" }, wantErr: true},
		{name: "bad date", mutate: func(p *payment.Payment) { p.PaymentDate = "15/01/2025" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
