package payment

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/domain/fault"
	domain "clubdesk/internal/domain/payment"
	subscriptiondomain "clubdesk/internal/domain/subscription"
)

const paymentColumns = "id, subscription_id, member_id, amount, payment_method, payment_date, receipt_number, notes, created_by, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanPayment(row interface{ Scan(...any) error }) (domain.Payment, error) {
	var entity domain.Payment
	var subscriptionID sql.NullString
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&subscriptionID,
		&entity.MemberID,
		&entity.Amount,
		&entity.Method,
		&entity.PaymentDate,
		&entity.ReceiptNumber,
		&entity.Notes,
		&entity.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	if subscriptionID.Valid {
		entity.SubscriptionID = subscriptionID.String
	}
	entity.CreatedAt, _ = time.Parse(storage.TimestampLayout, createdAt)
	return entity, nil
}

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = ?", id)
	entity, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fault.NotFound("payment", id)
	}
	if err != nil {
		return domain.Payment{}, fault.Storage("payment.GetByID", err)
	}
	return entity, nil
}

// ListByMember retrieves a member's payments, newest first.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Payment, error) {
	return s.list(ctx, "member_id = ?", memberID)
}

// ListBySubscription retrieves a subscription's payments, newest first.
func (s *SQLiteStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]domain.Payment, error) {
	return s.list(ctx, "subscription_id = ?", subscriptionID)
}

func (s *SQLiteStore) list(ctx context.Context, where string, arg any) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE "+where+" ORDER BY payment_date DESC, receipt_number DESC",
		arg)
	if err != nil {
		return nil, fault.Storage("payment.List", err)
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		entity, err := scanPayment(rows)
		if err != nil {
			return nil, fault.Storage("payment.List", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("payment.List", err)
	}
	return results, nil
}

// UpdateNotes changes a payment's free-text notes, the only mutable field.
// PRE: id is non-empty
// POST: Notes updated, or fault.NotFoundError
func (s *SQLiteStore) UpdateNotes(ctx context.Context, id, notes string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE payments SET notes = ? WHERE id = ?", notes, id)
	if err != nil {
		return fault.Storage("payment.UpdateNotes", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fault.Storage("payment.UpdateNotes", err)
	}
	if n == 0 {
		return fault.NotFound("payment", id)
	}
	return nil
}

// DeleteWithReversal removes a payment and reverses its effect on the
// linked subscription's invoice, all inside one transaction.
// PRE: id is non-empty
// POST: Payment deleted; linked subscription's amount_paid reduced and
// invoice state recomputed
func (s *SQLiteStore) DeleteWithReversal(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Storage("payment.DeleteWithReversal", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = ?", id)
	pay, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return fault.NotFound("payment", id)
	}
	if err != nil {
		return fault.Storage("payment.DeleteWithReversal", err)
	}

	if pay.SubscriptionID != "" {
		var amountPaid, price float64
		var paidAt sql.NullString
		err := tx.QueryRowContext(ctx, `
			SELECT s.amount_paid, s.paid_at, st.price
			FROM subscriptions s
			JOIN subscription_types st ON st.id = s.subscription_type_id
			WHERE s.id = ?`, pay.SubscriptionID).Scan(&amountPaid, &paidAt, &price)
		if err != nil {
			return fault.Storage("payment.DeleteWithReversal", err)
		}

		remaining := amountPaid - pay.Amount
		if remaining < 0 {
			remaining = 0
		}
		invoiceStatus := subscriptiondomain.InvoiceUnpaid
		var newPaidAt any
		if price > 0 && remaining >= price-subscriptiondomain.PaidEpsilon {
			invoiceStatus = subscriptiondomain.InvoicePaid
			if paidAt.Valid {
				newPaidAt = paidAt.String
			}
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE subscriptions SET amount_paid = ?, invoice_status = ?, paid_at = ?, updated_at = ?
			WHERE id = ?`,
			remaining, invoiceStatus, newPaidAt, time.Now().Format(storage.TimestampLayout), pay.SubscriptionID); err != nil {
			return fault.Storage("payment.DeleteWithReversal", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id); err != nil {
		return fault.Storage("payment.DeleteWithReversal", err)
	}

	if err := tx.Commit(); err != nil {
		return fault.Storage("payment.DeleteWithReversal", err)
	}
	return nil
}

// SumBetween returns the total revenue over [from, to].
// PRE: from and to are YYYY-MM-DD dates, from <= to
func (s *SQLiteStore) SumBetween(ctx context.Context, from, to string) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= ? AND payment_date <= ?",
		from, to).Scan(&total)
	if err != nil {
		return 0, fault.Storage("payment.SumBetween", err)
	}
	return total, nil
}

// SumByDay returns daily revenue totals over [from, to].
func (s *SQLiteStore) SumByDay(ctx context.Context, from, to string) ([]RevenuePoint, error) {
	return s.sumGrouped(ctx, "payment_date", from, to)
}

// SumByMonth returns monthly revenue totals over [from, to].
func (s *SQLiteStore) SumByMonth(ctx context.Context, from, to string) ([]RevenuePoint, error) {
	return s.sumGrouped(ctx, "substr(payment_date, 1, 7)", from, to)
}

func (s *SQLiteStore) sumGrouped(ctx context.Context, bucket, from, to string) ([]RevenuePoint, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bucket+" AS period, COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= ? AND payment_date <= ? GROUP BY period ORDER BY period",
		from, to)
	if err != nil {
		return nil, fault.Storage("payment.SumGrouped", err)
	}
	defer rows.Close()

	var results []RevenuePoint
	for rows.Next() {
		var p RevenuePoint
		if err := rows.Scan(&p.Period, &p.Total); err != nil {
			return nil, fault.Storage("payment.SumGrouped", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("payment.SumGrouped", err)
	}
	return results, nil
}

var _ Store = (*SQLiteStore)(nil)
