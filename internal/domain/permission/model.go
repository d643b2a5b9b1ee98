package permission

import (
	"errors"
	"strings"
)

// Page identifiers the permission matrix is keyed on.
const (
	PageMembers       = "members"
	PageSubscriptions = "subscriptions"
	PagePayments      = "payments"
	PageAttendance    = "attendance"
	PageReports       = "reports"
	PageSettings      = "settings"
	PageUsers         = "users"
)

// Permission holds one row of the role -> page capability matrix. This is
// the canonical schema; rows from the legacy role_permissions table are
// migrated into it on startup.
type Permission struct {
	Role      string
	Page      string
	CanView   bool
	CanAdd    bool
	CanEdit   bool
	CanDelete bool
	CanPrint  bool
}

// Validate checks if the Permission has valid data.
// PRE: Permission struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Permission) Validate() error {
	if strings.TrimSpace(p.Role) == "" {
		return errors.New("permission role cannot be empty")
	}
	if strings.TrimSpace(p.Page) == "" {
		return errors.New("permission page cannot be empty")
	}
	return nil
}

// Allows reports whether the given action is permitted. Unknown actions are
// denied.
// INVARIANT: Permission fields are not mutated
func (p *Permission) Allows(action string) bool {
	switch action {
	case "view":
		return p.CanView
	case "add":
		return p.CanAdd
	case "edit":
		return p.CanEdit
	case "delete":
		return p.CanDelete
	case "print":
		return p.CanPrint
	}
	return false
}
