package backup

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"clubdesk/internal/adapters/storage"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "live.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestSnapshotProducesOpenableCopy(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES ('general.gym_name', 'Iron Temple', '2025-01-15')`); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	dir := t.TempDir()
	mgr, err := NewManager(db, dir)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	mgr.now = func() time.Time { return time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC) }

	path, err := mgr.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if filepath.Base(path) != "clubdesk-20250115-103000.db" {
		t.Errorf("unexpected snapshot name: %s", filepath.Base(path))
	}

	copied, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open snapshot: %v", err)
	}
	defer copied.Close()
	var value string
	if err := copied.QueryRow(`SELECT value FROM settings WHERE key = 'general.gym_name'`).Scan(&value); err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if value != "Iron Temple" {
		t.Errorf("expected seeded value in snapshot, got %q", value)
	}
}

func TestSnapshotReplacesStaleFile(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	mgr, err := NewManager(db, dir)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	mgr.now = func() time.Time { return time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC) }

	stale := filepath.Join(dir, "clubdesk-20250115-103000.db")
	if err := os.WriteFile(stale, []byte("truncated"), 0o644); err != nil {
		t.Fatalf("failed to plant stale file: %v", err)
	}

	if _, err := mgr.Snapshot(context.Background()); err != nil {
		t.Fatalf("snapshot failed over stale file: %v", err)
	}
	info, err := os.Stat(stale)
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	if info.Size() <= int64(len("truncated")) {
		t.Error("expected the stale file to be replaced with a real database")
	}
}

func TestPruneByCountAndAge(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	mgr, err := NewManager(db, dir)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	mgr.now = func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) }

	// Two old files past the age cutoff, three recent ones.
	names := []string{
		"clubdesk-20241201-100000.db",
		"clubdesk-20241215-100000.db",
		"clubdesk-20250113-100000.db",
		"clubdesk-20250114-100000.db",
		"clubdesk-20250115-090000.db",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to plant snapshot %s: %v", n, err)
		}
	}
	// Unrelated files are never touched.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("failed to plant unrelated file: %v", err)
	}

	// maxCount 4 dooms the oldest one; maxAgeDays 7 dooms both December
	// files. The overlap counts once.
	deleted, err := mgr.Prune(4, 7)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deletions, got %d", deleted)
	}
	for _, n := range names[:2] {
		if _, err := os.Stat(filepath.Join(dir, n)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be pruned", n)
		}
	}
	for _, n := range names[2:] {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Errorf("expected %s to survive: %v", n, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("unrelated file must survive: %v", err)
	}
}

func TestPruneZeroLimitsKeepEverything(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	mgr, err := NewManager(db, dir)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "clubdesk-20200101-000000.db"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to plant snapshot: %v", err)
	}
	deleted, err := mgr.Prune(0, 0)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected nothing pruned, got %d", deleted)
	}
}
