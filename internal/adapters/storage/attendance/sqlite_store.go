package attendance

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/attendance"
	"clubdesk/internal/domain/fault"
)

const sessionColumns = "id, member_id, check_in, check_out, notes"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var entity domain.Session
	var checkIn string
	var checkOut sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.MemberID,
		&checkIn,
		&checkOut,
		&entity.Notes,
	)
	if err != nil {
		return domain.Session{}, err
	}
	entity.CheckIn, _ = time.Parse(storage.TimestampLayout, checkIn)
	if checkOut.Valid {
		entity.CheckOut, _ = time.Parse(storage.TimestampLayout, checkOut.String)
	}
	return entity, nil
}

// GetByID retrieves a Session by its ID.
// PRE: id is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM attendance WHERE id = ?", id)
	entity, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, fault.NotFound("attendance session", id)
	}
	if err != nil {
		return domain.Session{}, fault.Storage("attendance.GetByID", err)
	}
	return entity, nil
}

// Save persists a Session (insert or update). A second open session for
// the same member violates the partial unique index and surfaces as
// fault.ConflictError, the backstop for concurrent check-ins.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	var checkOut any
	if !entity.CheckOut.IsZero() {
		checkOut = entity.CheckOut.Format(storage.TimestampLayout)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			check_out=excluded.check_out, notes=excluded.notes`,
		entity.ID,
		entity.MemberID,
		entity.CheckIn.Format(storage.TimestampLayout),
		checkOut,
		entity.Notes,
	)
	if err != nil {
		return storage.TranslateConstraint("attendance.Save", "member is already checked in", err)
	}
	return nil
}

// GetOpenByMember returns the member's most recent open session.
// PRE: memberID is non-empty
// POST: Returns the open session or fault.NotFoundError
func (s *SQLiteStore) GetOpenByMember(ctx context.Context, memberID string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM attendance
		WHERE member_id = ? AND check_out IS NULL
		ORDER BY check_in DESC LIMIT 1`, memberID)
	entity, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, fault.NotFound("open attendance session", memberID)
	}
	if err != nil {
		return domain.Session{}, fault.Storage("attendance.GetOpenByMember", err)
	}
	return entity, nil
}

// ListByMember retrieves a member's sessions, newest first.
// PRE: memberID is non-empty, limit > 0
// POST: Returns up to limit sessions
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string, limit int) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM attendance WHERE member_id = ? ORDER BY check_in DESC LIMIT ?",
		memberID, limit)
	if err != nil {
		return nil, fault.Storage("attendance.ListByMember", err)
	}
	defer rows.Close()

	var results []domain.Session
	for rows.Next() {
		entity, err := scanSession(rows)
		if err != nil {
			return nil, fault.Storage("attendance.ListByMember", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("attendance.ListByMember", err)
	}
	return results, nil
}

// CountBetween returns the number of check-ins whose date falls in
// [from, to].
// PRE: from and to are YYYY-MM-DD dates, from <= to
func (s *SQLiteStore) CountBetween(ctx context.Context, from, to string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE substr(check_in, 1, 10) >= ? AND substr(check_in, 1, 10) <= ?",
		from, to).Scan(&count)
	if err != nil {
		return 0, fault.Storage("attendance.CountBetween", err)
	}
	return count, nil
}

// CountByDay returns daily check-in counts over [from, to].
// PRE: from and to are YYYY-MM-DD dates, from <= to
func (s *SQLiteStore) CountByDay(ctx context.Context, from, to string) ([]DayCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(check_in, 1, 10) AS day, COUNT(*)
		FROM attendance
		WHERE substr(check_in, 1, 10) >= ? AND substr(check_in, 1, 10) <= ?
		GROUP BY day ORDER BY day`, from, to)
	if err != nil {
		return nil, fault.Storage("attendance.CountByDay", err)
	}
	defer rows.Close()

	var results []DayCount
	for rows.Next() {
		var d DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fault.Storage("attendance.CountByDay", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("attendance.CountByDay", err)
	}
	return results, nil
}
