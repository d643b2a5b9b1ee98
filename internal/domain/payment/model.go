package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Receipt number format constants. Receipts reset every calendar day: the
// prefix carries the date, the suffix is a per-day sequence.
const (
	ReceiptPrefix = "REC-"
	ReceiptDigits = 4
)

// Payment method constants
const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

// Domain errors
var (
	ErrMalformedReceipt = errors.New("receipt number does not match REC-YYYYMMDD-NNNN")
)

// Payment holds state for a recorded sum of money. Rows are immutable once
// written, except for free-text notes; deleting a payment reverses the
// linked subscription's cumulative amount.
type Payment struct {
	ID             string
	SubscriptionID string // empty for payments not tied to a subscription
	MemberID       string
	Amount         float64
	Method         string
	PaymentDate    string // YYYY-MM-DD
	ReceiptNumber  string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MemberID must not be empty, Amount must be positive
func (p *Payment) Validate() error {
	if p.MemberID == "" {
		return errors.New("payment must be associated with a member")
	}
	if p.Amount <= 0 {
		return errors.New("payment amount must be positive")
	}
	if p.ReceiptNumber == "" {
		return errors.New("payment must carry a receipt number")
	}
	if _, err := time.Parse("2006-01-02", p.PaymentDate); err != nil {
		return errors.New("payment date must be YYYY-MM-DD")
	}
	return nil
}

// ReceiptDayPrefix returns the receipt prefix for the given day, e.g.
// "REC-20250101-".
func ReceiptDayPrefix(day time.Time) string {
	return ReceiptPrefix + day.Format("20060102") + "-"
}

// NextReceiptNumber returns the receipt number following last within the
// given day, or the day's first number when last is empty. The sequence
// restarts at 0001 each calendar day and never reuses a suffix, even after
// payment deletions.
// PRE: last is empty or a receipt previously issued on day
// POST: Returns a receipt strictly greater than last for that day
func NextReceiptNumber(day time.Time, last string) (string, error) {
	prefix := ReceiptDayPrefix(day)
	if last == "" {
		return fmt.Sprintf("%s%0*d", prefix, ReceiptDigits, 1), nil
	}
	suffix, ok := strings.CutPrefix(last, prefix)
	if !ok {
		return "", ErrMalformedReceipt
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return "", ErrMalformedReceipt
	}
	return fmt.Sprintf("%s%0*d", prefix, ReceiptDigits, n+1), nil
}
