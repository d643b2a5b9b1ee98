// Package backup takes and prunes point-in-time copies of the SQLite
// store. Snapshots use VACUUM INTO, which produces a consistent, compact
// single-file copy without blocking writers under WAL.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const filePrefix = "clubdesk-"

// Manager writes timestamped snapshot files into a directory and enforces
// a retention policy over them.
type Manager struct {
	db  *sql.DB
	dir string
	now func() time.Time // injectable for testing
}

// NewManager creates a backup Manager writing into dir, creating it if
// needed.
func NewManager(db *sql.DB, dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &Manager{db: db, dir: dir, now: time.Now}, nil
}

// Snapshot copies the live database to <dir>/clubdesk-YYYYMMDD-HHMMSS.db
// and returns the path. A leftover file from a failed earlier attempt at
// the same second is removed first, since VACUUM INTO refuses to
// overwrite.
// POST: the returned file is a complete, openable database
func (m *Manager) Snapshot(ctx context.Context) (string, error) {
	name := filePrefix + m.now().Format("20060102-150405") + ".db"
	path := filepath.Join(m.dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("clear stale snapshot: %w", err)
	}

	if _, err := m.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", path, err)
	}

	slog.Info("backup_event", "event", "snapshot_created", "path", path)
	return path, nil
}

// Prune deletes snapshots beyond maxCount (newest kept) and snapshots
// older than maxAgeDays. A zero disables that limit. Returns the number
// deleted.
func (m *Manager) Prune(maxCount, maxAgeDays int) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("read backup dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		names = append(names, e.Name())
	}
	// Timestamped names sort chronologically; newest last.
	sort.Strings(names)

	doomed := map[string]bool{}
	if maxCount > 0 && len(names) > maxCount {
		for _, n := range names[:len(names)-maxCount] {
			doomed[n] = true
		}
	}
	if maxAgeDays > 0 {
		cutoff := filePrefix + m.now().AddDate(0, 0, -maxAgeDays).Format("20060102-150405")
		for _, n := range names {
			if n < cutoff {
				doomed[n] = true
			}
		}
	}

	deleted := 0
	for n := range doomed {
		if err := os.Remove(filepath.Join(m.dir, n)); err != nil {
			return deleted, fmt.Errorf("remove snapshot %s: %w", n, err)
		}
		deleted++
	}
	if deleted > 0 {
		slog.Info("backup_event", "event", "snapshots_pruned", "count", deleted)
	}
	return deleted, nil
}

// StartWorker snapshots and prunes on an interval until stopCh is closed.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func (m *Manager) StartWorker(interval time.Duration, maxCount, maxAgeDays int, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := m.Snapshot(ctx); err != nil {
					slog.Error("backup_event", "event", "snapshot_failed", "error", err)
				} else if _, err := m.Prune(maxCount, maxAgeDays); err != nil {
					slog.Error("backup_event", "event", "prune_failed", "error", err)
				}
				cancel()
			case <-stopCh:
				return
			}
		}
	}()
}
