package subscription

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/domain/fault"
	paymentdomain "clubdesk/internal/domain/payment"
	domain "clubdesk/internal/domain/subscription"
)

const subscriptionColumns = "id, member_id, subscription_type_id, start_date, end_date, amount_paid, payment_method, status, invoice_status, paid_at, notes, created_by, created_at, updated_at"

// Conflict messages shared by the pre-checks and the constraint backstop,
// so a caller that lost a race sees the same rejection either way.
const (
	msgUnpaidExists  = "this member already has an unpaid invoice"
	msgPeriodOverlap = "a subscription already exists for this period"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new subscription store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanSubscription(row interface{ Scan(...any) error }) (domain.Subscription, error) {
	var entity domain.Subscription
	var paidAt, updatedAt sql.NullString
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.MemberID,
		&entity.PlanID,
		&entity.StartDate,
		&entity.EndDate,
		&entity.AmountPaid,
		&entity.PaymentMethod,
		&entity.Status,
		&entity.InvoiceStatus,
		&paidAt,
		&entity.Notes,
		&entity.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Subscription{}, err
	}
	if paidAt.Valid {
		entity.PaidAt = paidAt.String
	}
	entity.CreatedAt, _ = time.Parse(storage.TimestampLayout, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(storage.TimestampLayout, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a Subscription by its ID.
// PRE: id is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Subscription, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+subscriptionColumns+" FROM subscriptions WHERE id = ?", id)
	entity, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return domain.Subscription{}, fault.NotFound("subscription", id)
	}
	if err != nil {
		return domain.Subscription{}, fault.Storage("subscription.GetByID", err)
	}
	return entity, nil
}

// subscriptionArgs flattens a Subscription into insert/update arguments.
func subscriptionArgs(entity domain.Subscription) []any {
	var paidAt, updatedAt any
	if entity.PaidAt != "" {
		paidAt = entity.PaidAt
	}
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(storage.TimestampLayout)
	}
	return []any{
		entity.ID,
		entity.MemberID,
		entity.PlanID,
		entity.StartDate,
		entity.EndDate,
		entity.AmountPaid,
		entity.PaymentMethod,
		entity.Status,
		entity.InvoiceStatus,
		paidAt,
		entity.Notes,
		entity.CreatedBy,
		entity.CreatedAt.Format(storage.TimestampLayout),
		updatedAt,
	}
}

const upsertSubscription = `
	INSERT INTO subscriptions (` + subscriptionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		start_date=excluded.start_date, end_date=excluded.end_date,
		amount_paid=excluded.amount_paid, payment_method=excluded.payment_method,
		status=excluded.status, invoice_status=excluded.invoice_status,
		paid_at=excluded.paid_at, notes=excluded.notes,
		updated_at=excluded.updated_at`

// Save persists a Subscription (insert or update). Used for the freeze and
// cancel transitions; creation goes through CreateWithPayment.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Subscription) error {
	_, err := s.db.ExecContext(ctx, upsertSubscription, subscriptionArgs(entity)...)
	if err != nil {
		return storage.TranslateConstraint("subscription.Save", msgPeriodOverlap, err)
	}
	return nil
}

// ListByMember retrieves a member's subscriptions, newest period first.
// PRE: memberID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Subscription, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE member_id = ? ORDER BY start_date DESC",
		memberID)
	if err != nil {
		return nil, fault.Storage("subscription.ListByMember", err)
	}
	defer rows.Close()

	var results []domain.Subscription
	for rows.Next() {
		entity, err := scanSubscription(rows)
		if err != nil {
			return nil, fault.Storage("subscription.ListByMember", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("subscription.ListByMember", err)
	}
	return results, nil
}

// CreateWithPayment implements the atomic creation sequence. Every check
// and write happens inside one transaction; SQLite's single-writer model
// plus the partial unique index on non-cancelled periods close the
// check-then-write race either way.
// PRE: sub has been validated; pay, when non-nil, carries amount > 0
// POST: Subscription (and payment, when due) committed, or nothing
func (s *SQLiteStore) CreateWithPayment(ctx context.Context, sub domain.Subscription, pay *paymentdomain.Payment, today string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fault.Storage("subscription.CreateWithPayment", err)
	}
	defer tx.Rollback()

	// Lazy sweep scoped to this member: previously active subscriptions
	// whose end date has passed no longer block the new period.
	if _, err := tx.ExecContext(ctx, `
		UPDATE subscriptions SET status = ?, updated_at = ?
		WHERE member_id = ? AND status = ? AND end_date < ?`,
		domain.StatusExpired, nowTimestamp(), sub.MemberID, domain.StatusActive, today); err != nil {
		return "", fault.Storage("subscription.CreateWithPayment", err)
	}

	// Single outstanding invoice per member.
	var unpaidID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM subscriptions
		WHERE member_id = ? AND status != ? AND invoice_status = ?
		LIMIT 1`,
		sub.MemberID, domain.StatusCancelled, domain.InvoiceUnpaid).Scan(&unpaidID)
	if err == nil {
		return "", fault.Conflict(msgUnpaidExists, unpaidID)
	}
	if err != sql.ErrNoRows {
		return "", fault.Storage("subscription.CreateWithPayment", err)
	}

	// No overlapping non-cancelled period for the member.
	var overlapID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM subscriptions
		WHERE member_id = ? AND status != ?
		  AND NOT (end_date < ? OR start_date > ?)
		LIMIT 1`,
		sub.MemberID, domain.StatusCancelled, sub.StartDate, sub.EndDate).Scan(&overlapID)
	if err == nil {
		return "", fault.Conflict(msgPeriodOverlap, overlapID)
	}
	if err != sql.ErrNoRows {
		return "", fault.Storage("subscription.CreateWithPayment", err)
	}

	if _, err := tx.ExecContext(ctx, upsertSubscription, subscriptionArgs(sub)...); err != nil {
		return "", storage.TranslateConstraint("subscription.CreateWithPayment", msgPeriodOverlap, err)
	}

	receipt := ""
	if pay != nil {
		receipt, err = insertPaymentTx(ctx, tx, *pay)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fault.Storage("subscription.CreateWithPayment", err)
	}
	return receipt, nil
}

// ApplyPayment implements the atomic payment-application sequence.
// PRE: pay carries ID, Amount, Method, PaymentDate, Notes, CreatedBy
// POST: Payment committed and invoice state updated, or nothing
func (s *SQLiteStore) ApplyPayment(ctx context.Context, subscriptionID string, pay paymentdomain.Payment) (paymentdomain.Payment, domain.Subscription, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return paymentdomain.Payment{}, domain.Subscription{}, fault.Storage("subscription.ApplyPayment", err)
	}
	defer tx.Rollback()

	// Re-read the subscription and its plan price inside the transaction:
	// the balance check must see the committed state, not a stale copy.
	row := tx.QueryRowContext(ctx, `
		SELECT `+prefixedSubscriptionColumns+`, st.price
		FROM subscriptions s
		JOIN subscription_types st ON st.id = s.subscription_type_id
		WHERE s.id = ?`, subscriptionID)
	var price float64
	sub, err := scanSubscriptionWithPrice(row, &price)
	if err == sql.ErrNoRows {
		return paymentdomain.Payment{}, domain.Subscription{}, fault.NotFound("subscription", subscriptionID)
	}
	if err != nil {
		return paymentdomain.Payment{}, domain.Subscription{}, fault.Storage("subscription.ApplyPayment", err)
	}

	if err := sub.ApplyPayment(pay.Amount, price, pay.PaymentDate); err != nil {
		switch err {
		case domain.ErrInvoiceAlreadyPaid:
			return paymentdomain.Payment{}, domain.Subscription{}, fault.Conflict("invoice is already fully paid", sub.ID)
		case domain.ErrExceedsBalance:
			return paymentdomain.Payment{}, domain.Subscription{}, fault.Conflict("payment exceeds the remaining balance", sub.ID)
		default:
			return paymentdomain.Payment{}, domain.Subscription{}, fault.Validation("amount", err.Error())
		}
	}

	pay.SubscriptionID = sub.ID
	pay.MemberID = sub.MemberID
	receipt, err := insertPaymentTx(ctx, tx, pay)
	if err != nil {
		return paymentdomain.Payment{}, domain.Subscription{}, err
	}
	pay.ReceiptNumber = receipt

	sub.UpdatedAt = time.Now()
	var paidAt any
	if sub.PaidAt != "" {
		paidAt = sub.PaidAt
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE subscriptions SET amount_paid = ?, invoice_status = ?, paid_at = ?, updated_at = ?
		WHERE id = ?`,
		sub.AmountPaid, sub.InvoiceStatus, paidAt, sub.UpdatedAt.Format(storage.TimestampLayout), sub.ID); err != nil {
		return paymentdomain.Payment{}, domain.Subscription{}, fault.Storage("subscription.ApplyPayment", err)
	}

	if err := tx.Commit(); err != nil {
		return paymentdomain.Payment{}, domain.Subscription{}, fault.Storage("subscription.ApplyPayment", err)
	}
	return pay, sub, nil
}

// insertPaymentTx generates the next receipt number for the payment's date
// and inserts the row, all within the caller's transaction. The UNIQUE
// constraint on receipt_number is the backstop for concurrent generation.
func insertPaymentTx(ctx context.Context, tx *sql.Tx, pay paymentdomain.Payment) (string, error) {
	day, err := time.Parse(storage.DateLayout, pay.PaymentDate)
	if err != nil {
		return "", fault.Validation("payment_date", "payment date must be YYYY-MM-DD")
	}
	prefix := paymentdomain.ReceiptDayPrefix(day)

	var last sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT MAX(receipt_number) FROM payments WHERE receipt_number LIKE ?",
		prefix+"%").Scan(&last)
	if err != nil {
		return "", fault.Storage("payment.insert", err)
	}
	receipt, err := paymentdomain.NextReceiptNumber(day, last.String)
	if err != nil {
		return "", fault.Storage("payment.insert", err)
	}

	var subscriptionID any
	if pay.SubscriptionID != "" {
		subscriptionID = pay.SubscriptionID
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (id, subscription_id, member_id, amount, payment_method, payment_date, receipt_number, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pay.ID,
		subscriptionID,
		pay.MemberID,
		pay.Amount,
		pay.Method,
		pay.PaymentDate,
		receipt,
		pay.Notes,
		pay.CreatedBy,
		pay.CreatedAt.Format(storage.TimestampLayout),
	)
	if err != nil {
		return "", storage.TranslateConstraint("payment.insert", "a payment with this receipt number already exists", err)
	}
	return receipt, nil
}

// ExpireLapsed transitions every active subscription past its end date to
// expired. Idempotent: a second run when nothing qualifies is a no-op.
// PRE: today is a YYYY-MM-DD date
// POST: Returns the number of subscriptions expired
func (s *SQLiteStore) ExpireLapsed(ctx context.Context, today string) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = ?, updated_at = ?
		WHERE status = ? AND end_date < ?`,
		domain.StatusExpired, nowTimestamp(), domain.StatusActive, today)
	if err != nil {
		return 0, fault.Storage("subscription.ExpireLapsed", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fault.Storage("subscription.ExpireLapsed", err)
	}
	return int(n), nil
}

// CountByStatus returns the number of subscriptions with the given status.
func (s *SQLiteStore) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE status = ?", status).Scan(&count)
	if err != nil {
		return 0, fault.Storage("subscription.CountByStatus", err)
	}
	return count, nil
}

// CountUnpaid returns the number of non-cancelled unpaid subscriptions.
func (s *SQLiteStore) CountUnpaid(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE status != ? AND invoice_status = ?",
		domain.StatusCancelled, domain.InvoiceUnpaid).Scan(&count)
	if err != nil {
		return 0, fault.Storage("subscription.CountUnpaid", err)
	}
	return count, nil
}

// ListExpiringBetween lists non-terminal subscriptions whose end date falls
// in [from, to], joined with member contact details, soonest first.
// PRE: from and to are YYYY-MM-DD dates, from <= to
// POST: Returns matching rows
func (s *SQLiteStore) ListExpiringBetween(ctx context.Context, from, to string) ([]ExpiryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, m.id, m.member_code, m.first_name || ' ' || m.last_name, m.email,
		       COALESCE(NULLIF(st.name_en, ''), st.name_ar), s.end_date
		FROM subscriptions s
		JOIN members m ON m.id = s.member_id
		JOIN subscription_types st ON st.id = s.subscription_type_id
		WHERE s.status IN (?, ?) AND s.end_date >= ? AND s.end_date <= ?
		ORDER BY s.end_date`,
		domain.StatusActive, domain.StatusFrozen, from, to)
	if err != nil {
		return nil, fault.Storage("subscription.ListExpiringBetween", err)
	}
	defer rows.Close()

	var results []ExpiryRow
	for rows.Next() {
		var r ExpiryRow
		if err := rows.Scan(&r.SubscriptionID, &r.MemberID, &r.MemberCode, &r.MemberName, &r.MemberEmail, &r.PlanName, &r.EndDate); err != nil {
			return nil, fault.Storage("subscription.ListExpiringBetween", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("subscription.ListExpiringBetween", err)
	}
	return results, nil
}

// ListExpired lists subscriptions already in the expired status, most
// recently lapsed first, joined with member contact details.
// PRE: limit > 0
// POST: Returns at most limit rows
func (s *SQLiteStore) ListExpired(ctx context.Context, limit int) ([]ExpiryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, m.id, m.member_code, m.first_name || ' ' || m.last_name, m.email,
		       COALESCE(NULLIF(st.name_en, ''), st.name_ar), s.end_date
		FROM subscriptions s
		JOIN members m ON m.id = s.member_id
		JOIN subscription_types st ON st.id = s.subscription_type_id
		WHERE s.status = ?
		ORDER BY s.end_date DESC
		LIMIT ?`,
		domain.StatusExpired, limit)
	if err != nil {
		return nil, fault.Storage("subscription.ListExpired", err)
	}
	defer rows.Close()

	var results []ExpiryRow
	for rows.Next() {
		var r ExpiryRow
		if err := rows.Scan(&r.SubscriptionID, &r.MemberID, &r.MemberCode, &r.MemberName, &r.MemberEmail, &r.PlanName, &r.EndDate); err != nil {
			return nil, fault.Storage("subscription.ListExpired", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("subscription.ListExpired", err)
	}
	return results, nil
}

// PlanBreakdown returns per-plan subscription counts and collected revenue
// across non-cancelled subscriptions.
func (s *SQLiteStore) PlanBreakdown(ctx context.Context) ([]PlanUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT st.id, COALESCE(NULLIF(st.name_en, ''), st.name_ar),
		       COUNT(s.id), COALESCE(SUM(s.amount_paid), 0)
		FROM subscription_types st
		LEFT JOIN subscriptions s ON s.subscription_type_id = st.id AND s.status != ?
		GROUP BY st.id
		ORDER BY st.created_at`,
		domain.StatusCancelled)
	if err != nil {
		return nil, fault.Storage("subscription.PlanBreakdown", err)
	}
	defer rows.Close()

	var results []PlanUsage
	for rows.Next() {
		var u PlanUsage
		if err := rows.Scan(&u.PlanID, &u.PlanName, &u.Subscriptions, &u.Revenue); err != nil {
			return nil, fault.Storage("subscription.PlanBreakdown", err)
		}
		results = append(results, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("subscription.PlanBreakdown", err)
	}
	return results, nil
}

// prefixedSubscriptionColumns is subscriptionColumns qualified with the s.
// alias for joined queries.
const prefixedSubscriptionColumns = "s.id, s.member_id, s.subscription_type_id, s.start_date, s.end_date, s.amount_paid, s.payment_method, s.status, s.invoice_status, s.paid_at, s.notes, s.created_by, s.created_at, s.updated_at"

// scanSubscriptionWithPrice scans a subscription row with a trailing plan
// price column.
func scanSubscriptionWithPrice(row interface{ Scan(...any) error }, price *float64) (domain.Subscription, error) {
	var entity domain.Subscription
	var paidAt, updatedAt sql.NullString
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.MemberID,
		&entity.PlanID,
		&entity.StartDate,
		&entity.EndDate,
		&entity.AmountPaid,
		&entity.PaymentMethod,
		&entity.Status,
		&entity.InvoiceStatus,
		&paidAt,
		&entity.Notes,
		&entity.CreatedBy,
		&createdAt,
		&updatedAt,
		price,
	)
	if err != nil {
		return domain.Subscription{}, err
	}
	if paidAt.Valid {
		entity.PaidAt = paidAt.String
	}
	entity.CreatedAt, _ = time.Parse(storage.TimestampLayout, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(storage.TimestampLayout, updatedAt.String)
	}
	return entity, nil
}

func nowTimestamp() string {
	return time.Now().Format(storage.TimestampLayout)
}

var _ Store = (*SQLiteStore)(nil)
