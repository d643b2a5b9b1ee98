package storage

import (
	"database/sql"
	"fmt"
)

// Wire formats for calendar dates and timestamps, shared by every store.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Open opens the SQLite store at path with WAL mode, foreign keys, and a
// busy timeout, and configures pool limits for WAL.
// PRE: path is a file path or ":memory:"
// POST: Returns an open, pinged connection pool
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// baseSchema creates all tables and indexes. Idempotent: safe to run on
// every startup. The unique indexes back the billing invariants: duplicate
// member codes, duplicate receipt numbers, duplicate non-cancelled
// subscription periods, and a second open attendance session all fail
// here even if a concurrent caller slipped past the orchestrator's
// pre-checks.
const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL DEFAULT '',
	password_salt TEXT NOT NULL DEFAULT '',
	full_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT
);

CREATE TABLE IF NOT EXISTS members (
	id TEXT PRIMARY KEY,
	member_code TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	birth_date TEXT,
	address TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	join_date TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT
);

CREATE TABLE IF NOT EXISTS subscription_types (
	id TEXT PRIMARY KEY,
	name_ar TEXT NOT NULL DEFAULT '',
	name_en TEXT NOT NULL DEFAULT '',
	duration_months INTEGER NOT NULL,
	price REAL NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subscriptions (
	id TEXT PRIMARY KEY,
	member_id TEXT NOT NULL,
	subscription_type_id TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	amount_paid REAL NOT NULL DEFAULT 0,
	payment_method TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	invoice_status TEXT NOT NULL,
	paid_at TEXT,
	notes TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT,
	FOREIGN KEY (member_id) REFERENCES members(id),
	FOREIGN KEY (subscription_type_id) REFERENCES subscription_types(id)
);

CREATE TABLE IF NOT EXISTS payments (
	id TEXT PRIMARY KEY,
	subscription_id TEXT,
	member_id TEXT NOT NULL,
	amount REAL NOT NULL,
	payment_method TEXT NOT NULL DEFAULT '',
	payment_date TEXT NOT NULL,
	receipt_number TEXT NOT NULL UNIQUE,
	notes TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	FOREIGN KEY (subscription_id) REFERENCES subscriptions(id),
	FOREIGN KEY (member_id) REFERENCES members(id)
);

CREATE TABLE IF NOT EXISTS attendance (
	id TEXT PRIMARY KEY,
	member_id TEXT NOT NULL,
	check_in TEXT NOT NULL,
	check_out TEXT,
	notes TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (member_id) REFERENCES members(id)
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT '',
	updated_at TEXT
);

CREATE TABLE IF NOT EXISTS permissions (
	role TEXT NOT NULL,
	page TEXT NOT NULL,
	can_view INTEGER NOT NULL DEFAULT 0,
	can_add INTEGER NOT NULL DEFAULT 0,
	can_edit INTEGER NOT NULL DEFAULT 0,
	can_delete INTEGER NOT NULL DEFAULT 0,
	can_print INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (role, page)
);

CREATE TABLE IF NOT EXISTS role_permissions (
	role TEXT NOT NULL,
	module TEXT NOT NULL,
	can_view INTEGER NOT NULL DEFAULT 0,
	can_edit INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (role, module)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_period
	ON subscriptions(member_id, subscription_type_id, start_date, end_date)
	WHERE status != 'cancelled';

CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_open
	ON attendance(member_id)
	WHERE check_out IS NULL;

CREATE INDEX IF NOT EXISTS idx_subscriptions_member
	ON subscriptions(member_id, status);

CREATE INDEX IF NOT EXISTS idx_subscriptions_end_date
	ON subscriptions(status, end_date);

CREATE INDEX IF NOT EXISTS idx_payments_date
	ON payments(payment_date);

CREATE INDEX IF NOT EXISTS idx_attendance_member
	ON attendance(member_id, check_in);
`

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables and indexes exist, WAL mode enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
