package member

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	domain "clubdesk/internal/domain/member"
	"clubdesk/internal/domain/fault"
)

const memberColumns = "id, member_code, first_name, last_name, phone, email, gender, birth_date, address, notes, status, join_date, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanMember(row interface{ Scan(...any) error }) (domain.Member, error) {
	var entity domain.Member
	var birthDate, updatedAt sql.NullString
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.Code,
		&entity.FirstName,
		&entity.LastName,
		&entity.Phone,
		&entity.Email,
		&entity.Gender,
		&birthDate,
		&entity.Address,
		&entity.Notes,
		&entity.Status,
		&entity.JoinDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Member{}, err
	}
	if birthDate.Valid {
		entity.BirthDate = birthDate.String
	}
	entity.CreatedAt, _ = time.Parse(storage.TimestampLayout, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(storage.TimestampLayout, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE id = ?", id)
	entity, err := scanMember(row)
	if err == sql.ErrNoRows {
		return domain.Member{}, fault.NotFound("member", id)
	}
	if err != nil {
		return domain.Member{}, fault.Storage("member.GetByID", err)
	}
	return entity, nil
}

// GetByCode retrieves a Member by its MEM-NNNN code.
// PRE: code is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByCode(ctx context.Context, code string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE member_code = ?", code)
	entity, err := scanMember(row)
	if err == sql.ErrNoRows {
		return domain.Member{}, fault.NotFound("member", code)
	}
	if err != nil {
		return domain.Member{}, fault.Storage("member.GetByCode", err)
	}
	return entity, nil
}

// Save persists a Member (insert or update). A duplicate member code
// surfaces as fault.ConflictError: the UNIQUE constraint is the backstop
// for code generation races.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	var birthDate, updatedAt any
	if entity.BirthDate != "" {
		birthDate = entity.BirthDate
	}
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(storage.TimestampLayout)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (`+memberColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_code=excluded.member_code, first_name=excluded.first_name,
			last_name=excluded.last_name, phone=excluded.phone, email=excluded.email,
			gender=excluded.gender, birth_date=excluded.birth_date,
			address=excluded.address, notes=excluded.notes, status=excluded.status,
			join_date=excluded.join_date, updated_at=excluded.updated_at`,
		entity.ID,
		entity.Code,
		entity.FirstName,
		entity.LastName,
		entity.Phone,
		entity.Email,
		entity.Gender,
		birthDate,
		entity.Address,
		entity.Notes,
		entity.Status,
		entity.JoinDate,
		entity.CreatedAt.Format(storage.TimestampLayout),
		updatedAt,
	)
	if err != nil {
		return storage.TranslateConstraint("member.Save", "a member with this code already exists", err)
	}
	return nil
}

// List retrieves Members matching the filter, ordered by code.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + memberColumns + " FROM members" + where + " ORDER BY member_code"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Storage("member.List", err)
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, fault.Storage("member.List", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("member.List", err)
	}
	return results, nil
}

// Count returns the total number of members matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members"+where, args...).Scan(&count)
	if err != nil {
		return 0, fault.Storage("member.Count", err)
	}
	return count, nil
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	return where, args
}

// Search finds members by case-insensitive substring across code, phone,
// first name, last name, and the concatenated full name.
// PRE: query is non-empty, limit > 0
// POST: Returns matching members ordered by code
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	term := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE member_code LIKE ? COLLATE NOCASE
		   OR phone LIKE ?
		   OR first_name LIKE ? COLLATE NOCASE
		   OR last_name LIKE ? COLLATE NOCASE
		   OR (first_name || ' ' || last_name) LIKE ? COLLATE NOCASE
		ORDER BY member_code LIMIT ?`,
		term, term, term, term, term, limit)
	if err != nil {
		return nil, fault.Storage("member.Search", err)
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, fault.Storage("member.Search", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("member.Search", err)
	}
	return results, nil
}

// LastCode returns the member code of the most recently created member, or
// "" when no members exist. Feeds domain.NextCode; not globally monotonic
// under concurrent callers, so the UNIQUE constraint on member_code is the
// backstop.
// PRE: none
// POST: Returns the latest code or ""
func (s *SQLiteStore) LastCode(ctx context.Context) (string, error) {
	var code string
	err := s.db.QueryRowContext(ctx, `
		SELECT member_code FROM members
		WHERE member_code LIKE ?
		ORDER BY created_at DESC, member_code DESC LIMIT 1`,
		domain.CodePrefix+"%").Scan(&code)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fault.Storage("member.LastCode", err)
	}
	return code, nil
}

// ReactivateAll flips every inactive member back to active.
// PRE: none
// POST: Returns the number of members reactivated
func (s *SQLiteStore) ReactivateAll(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE members SET status = ?, updated_at = ? WHERE status = ?",
		domain.StatusActive, time.Now().Format(storage.TimestampLayout), domain.StatusInactive)
	if err != nil {
		return 0, fault.Storage("member.ReactivateAll", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fault.Storage("member.ReactivateAll", err)
	}
	return int(n), nil
}

var _ Store = (*SQLiteStore)(nil)
