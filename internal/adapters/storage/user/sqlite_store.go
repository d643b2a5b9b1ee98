package user

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/domain/fault"
	domain "clubdesk/internal/domain/user"
)

const userColumns = "id, username, password_hash, password_salt, full_name, role, is_active, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var entity domain.User
	var createdAt string
	var updatedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Username,
		&entity.PasswordHash,
		&entity.PasswordSalt,
		&entity.FullName,
		&entity.Role,
		&entity.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	entity.CreatedAt, _ = time.Parse(storage.TimestampLayout, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(storage.TimestampLayout, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	entity, err := scanUser(row)
	if err == sql.ErrNoRows {
		return domain.User{}, fault.NotFound("user", id)
	}
	if err != nil {
		return domain.User{}, fault.Storage("user.GetByID", err)
	}
	return entity, nil
}

// GetByUsername retrieves a User by username.
// PRE: username is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	entity, err := scanUser(row)
	if err == sql.ErrNoRows {
		return domain.User{}, fault.NotFound("user", username)
	}
	if err != nil {
		return domain.User{}, fault.Storage("user.GetByUsername", err)
	}
	return entity, nil
}

// Save persists a User (insert or update). A duplicate username surfaces
// as fault.ConflictError.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(storage.TimestampLayout)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username=excluded.username, password_hash=excluded.password_hash,
			password_salt=excluded.password_salt, full_name=excluded.full_name,
			role=excluded.role, is_active=excluded.is_active,
			updated_at=excluded.updated_at`,
		entity.ID,
		entity.Username,
		entity.PasswordHash,
		entity.PasswordSalt,
		entity.FullName,
		entity.Role,
		entity.IsActive,
		entity.CreatedAt.Format(storage.TimestampLayout),
		updatedAt,
	)
	if err != nil {
		return storage.TranslateConstraint("user.Save", "a user with this username already exists", err)
	}
	return nil
}

// List retrieves all users ordered by username.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, fault.Storage("user.List", err)
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		entity, err := scanUser(rows)
		if err != nil {
			return nil, fault.Storage("user.List", err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("user.List", err)
	}
	return results, nil
}

// Count returns the total number of users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fault.Storage("user.Count", err)
	}
	return count, nil
}
