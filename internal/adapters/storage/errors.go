package storage

import (
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"

	"clubdesk/internal/domain/fault"
)

// SQLITE_CONSTRAINT is the primary result code for constraint violations;
// extended codes (UNIQUE, FOREIGNKEY, ...) share its low byte.
const sqliteConstraint = 19

// IsConstraintViolation reports whether err is a SQLite constraint failure
// (UNIQUE, FOREIGN KEY, CHECK, NOT NULL).
func IsConstraintViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqliteConstraint
	}
	// The driver sometimes surfaces constraint failures as plain errors.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}

// TranslateConstraint maps a store-level constraint violation to the
// ConflictError the pre-check would have produced, so a caller that lost a
// check-then-write race sees the same typed rejection. Other errors are
// wrapped as StorageError.
// PRE: err is non-nil
// POST: Returns a fault.ConflictError or fault.StorageError
func TranslateConstraint(op, reason string, err error) error {
	if IsConstraintViolation(err) {
		return fault.Conflict(reason, "")
	}
	return fault.Storage(op, err)
}
