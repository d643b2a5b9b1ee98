package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// migration is a single versioned schema change applied inside one
// transaction.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

// migrations is the ordered list of schema changes. Append only; never
// renumber a shipped migration.
var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		apply: func(tx *sql.Tx) error {
			_, err := tx.Exec(baseSchema)
			return err
		},
	},
	{
		version: 2,
		name:    "fold role_permissions into permissions",
		apply:   migrateRolePermissions,
	},
	{
		version: 3,
		name:    "hash legacy plaintext passwords",
		apply:   migratePlaintextPasswords,
	},
}

// MigrateDB creates the schema_version table and applies all pending
// migrations. Idempotent and safe to run on every startup.
// PRE: db is a valid database connection with foreign keys enabled
// POST: Schema is at LatestSchemaVersion
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: clear version: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", m.version, err)
		}
		slog.Info("migration_applied", "version", m.version, "name", m.name)
	}

	return nil
}

// SchemaVersion returns the current schema version, 0 for a fresh database.
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// LatestSchemaVersion returns the highest known migration version.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// migrateRolePermissions copies rows from the legacy role_permissions
// table into the canonical permissions table, then empties the legacy
// table. permissions rows that already exist win: the legacy table was the
// fallback, never the source of truth. The legacy module's edit capability
// maps to add+edit; delete and print start denied.
func migrateRolePermissions(tx *sql.Tx) error {
	_, err := tx.Exec(`
		INSERT OR IGNORE INTO permissions (role, page, can_view, can_add, can_edit, can_delete, can_print)
		SELECT role, module, can_view, can_edit, can_edit, 0, 0
		FROM role_permissions`)
	if err != nil {
		return fmt.Errorf("copy role_permissions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM role_permissions"); err != nil {
		return fmt.Errorf("clear role_permissions: %w", err)
	}
	return nil
}

// migratePlaintextPasswords backfills password_hash for user rows written
// by the earliest releases, which stored the password in clear text. Each
// row gets a fresh random salt and a salted SHA-256 digest; the plaintext
// column is blanked. Verification of these rows happens through the
// legacy-salt path until the password is next changed, at which point the
// row moves to bcrypt.
func migratePlaintextPasswords(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT id, password FROM users WHERE password != '' AND password_hash = ''")
	if err != nil {
		return fmt.Errorf("list plaintext users: %w", err)
	}
	type legacyRow struct {
		id       string
		password string
	}
	var pending []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.id, &r.password); err != nil {
			rows.Close()
			return fmt.Errorf("scan plaintext user: %w", err)
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, r := range pending {
		saltBytes := make([]byte, 8)
		if _, err := rand.Read(saltBytes); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		salt := hex.EncodeToString(saltBytes)
		sum := sha256.Sum256([]byte(salt + r.password))
		digest := hex.EncodeToString(sum[:])
		_, err := tx.Exec(
			"UPDATE users SET password = '', password_hash = ?, password_salt = ? WHERE id = ?",
			digest, salt, r.id)
		if err != nil {
			return fmt.Errorf("hash user %s: %w", r.id, err)
		}
	}
	return nil
}
