package permission

import (
	"context"
	"database/sql"

	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/domain/fault"
	domain "clubdesk/internal/domain/permission"
)

const permissionColumns = "role, page, can_view, can_add, can_edit, can_delete, can_print"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new permission store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanPermission(row interface{ Scan(...any) error }) (domain.Permission, error) {
	var entity domain.Permission
	err := row.Scan(
		&entity.Role,
		&entity.Page,
		&entity.CanView,
		&entity.CanAdd,
		&entity.CanEdit,
		&entity.CanDelete,
		&entity.CanPrint,
	)
	return entity, err
}

// Get retrieves the permission row for a role and page.
// PRE: role and page are non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) Get(ctx context.Context, role, page string) (domain.Permission, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+permissionColumns+" FROM permissions WHERE role = ? AND page = ?", role, page)
	entity, err := scanPermission(row)
	if err == sql.ErrNoRows {
		return domain.Permission{}, fault.NotFound("permission", role+"/"+page)
	}
	if err != nil {
		return domain.Permission{}, fault.Storage("permission.Get", err)
	}
	return entity, nil
}

// Save upserts a permission row.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Permission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO permissions (`+permissionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(role, page) DO UPDATE SET
			can_view=excluded.can_view, can_add=excluded.can_add,
			can_edit=excluded.can_edit, can_delete=excluded.can_delete,
			can_print=excluded.can_print`,
		entity.Role,
		entity.Page,
		entity.CanView,
		entity.CanAdd,
		entity.CanEdit,
		entity.CanDelete,
		entity.CanPrint,
	)
	if err != nil {
		return fault.Storage("permission.Save", err)
	}
	return nil
}

// ListByRole retrieves all permission rows for a role, ordered by page.
// PRE: role is non-empty
// POST: Returns matching rows
func (s *SQLiteStore) ListByRole(ctx context.Context, role string) ([]domain.Permission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+permissionColumns+" FROM permissions WHERE role = ? ORDER BY page", role)
	if err != nil {
		return nil, fault.Storage("permission.ListByRole", err)
	}
	defer rows.Close()

	var results []domain.Permission
	for rows.Next() {
		entity, err := scanPermission(rows)
		if err != nil {
			return nil, fault.Storage("permission.ListByRole", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("permission.ListByRole", err)
	}
	return results, nil
}
