package plan

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/domain/fault"
	domain "clubdesk/internal/domain/plan"
)

const planColumns = "id, name_ar, name_en, duration_months, price, is_active, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new plan store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanPlan(row interface{ Scan(...any) error }) (domain.Plan, error) {
	var entity domain.Plan
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.NameAr,
		&entity.NameEn,
		&entity.DurationMonths,
		&entity.Price,
		&entity.IsActive,
		&createdAt,
	)
	if err != nil {
		return domain.Plan{}, err
	}
	entity.CreatedAt, _ = time.Parse(storage.TimestampLayout, createdAt)
	return entity, nil
}

// GetByID retrieves a Plan by its ID.
// PRE: id is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+planColumns+" FROM subscription_types WHERE id = ?", id)
	entity, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return domain.Plan{}, fault.NotFound("plan", id)
	}
	if err != nil {
		return domain.Plan{}, fault.Storage("plan.GetByID", err)
	}
	return entity, nil
}

// Save persists a Plan (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Plan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscription_types (`+planColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name_ar=excluded.name_ar, name_en=excluded.name_en,
			duration_months=excluded.duration_months, price=excluded.price,
			is_active=excluded.is_active`,
		entity.ID,
		entity.NameAr,
		entity.NameEn,
		entity.DurationMonths,
		entity.Price,
		entity.IsActive,
		entity.CreatedAt.Format(storage.TimestampLayout),
	)
	if err != nil {
		return fault.Storage("plan.Save", err)
	}
	return nil
}

// List retrieves plans, optionally only active ones, ordered by creation.
// PRE: none
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	query := "SELECT " + planColumns + " FROM subscription_types"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fault.Storage("plan.List", err)
	}
	defer rows.Close()

	var results []domain.Plan
	for rows.Next() {
		entity, err := scanPlan(rows)
		if err != nil {
			return nil, fault.Storage("plan.List", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("plan.List", err)
	}
	return results, nil
}
