package setting

import (
	"context"
	"database/sql"
	"time"

	"clubdesk/internal/adapters/storage"
	"clubdesk/internal/domain/fault"
	domain "clubdesk/internal/domain/setting"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new setting store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a Setting by its flattened category.key.
// PRE: key is non-empty
// POST: Returns the entity or fault.NotFoundError
func (s *SQLiteStore) Get(ctx context.Context, key string) (domain.Setting, error) {
	var entity domain.Setting
	var updatedAt sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM settings WHERE key = ?", key).
		Scan(&entity.Key, &entity.Value, &updatedAt)
	if err == sql.ErrNoRows {
		return domain.Setting{}, fault.NotFound("setting", key)
	}
	if err != nil {
		return domain.Setting{}, fault.Storage("setting.Get", err)
	}
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(storage.TimestampLayout, updatedAt.String)
	}
	return entity, nil
}

// Set upserts a Setting.
// PRE: entity has been validated
// POST: Entity is persisted with a fresh updated_at
func (s *SQLiteStore) Set(ctx context.Context, entity domain.Setting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		entity.Key, entity.Value, time.Now().Format(storage.TimestampLayout))
	if err != nil {
		return fault.Storage("setting.Set", err)
	}
	return nil
}

// List retrieves all settings ordered by key.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Setting, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value, updated_at FROM settings ORDER BY key")
	if err != nil {
		return nil, fault.Storage("setting.List", err)
	}
	defer rows.Close()

	var results []domain.Setting
	for rows.Next() {
		var entity domain.Setting
		var updatedAt sql.NullString
		if err := rows.Scan(&entity.Key, &entity.Value, &updatedAt); err != nil {
			return nil, fault.Storage("setting.List", err)
		}
		if updatedAt.Valid {
			entity.UpdatedAt, _ = time.Parse(storage.TimestampLayout, updatedAt.String)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Storage("setting.List", err)
	}
	return results, nil
}
