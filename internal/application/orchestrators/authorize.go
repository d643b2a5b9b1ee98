package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/permission"
	"clubdesk/internal/domain/user"
)

// PermissionStore interface for permission operations.
type PermissionStore interface {
	Get(ctx context.Context, role, page string) (permission.Permission, error)
	Save(ctx context.Context, value permission.Permission) error
	ListByRole(ctx context.Context, role string) ([]permission.Permission, error)
}

// ExecuteCheckPermission reports whether role may perform action on page.
// Admins bypass the matrix entirely; for everyone else a missing row
// denies, it never grants.
// POST: returns false, nil on a plain denial; errors are storage only
func ExecuteCheckPermission(ctx context.Context, role, page, action string, store PermissionStore) (bool, error) {
	if role == user.RoleAdmin {
		return true, nil
	}

	perm, err := store.Get(ctx, role, page)
	if fault.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return perm.Allows(action), nil
}

// ExecuteSavePermission upserts one row of the role -> page matrix. Admin
// rows are rejected since the admin role never consults the matrix.
func ExecuteSavePermission(ctx context.Context, perm permission.Permission, store PermissionStore) error {
	perm.Role = strings.TrimSpace(perm.Role)
	perm.Page = strings.TrimSpace(perm.Page)
	if err := perm.Validate(); err != nil {
		return fault.Validation("permission", err.Error())
	}
	if perm.Role == user.RoleAdmin {
		return fault.Validation("role", "the admin role always has full access")
	}

	if err := store.Save(ctx, perm); err != nil {
		return err
	}

	slog.Info("permission_event",
		"event", "permission_saved",
		"role", perm.Role,
		"page", perm.Page)
	return nil
}

// defaultPermissions is the matrix seeded for a fresh database. Managers
// run the club day to day; reception handles the front desk and cannot
// delete anything or touch users and settings.
var defaultPermissions = []permission.Permission{
	{Role: user.RoleManager, Page: permission.PageMembers, CanView: true, CanAdd: true, CanEdit: true, CanDelete: true, CanPrint: true},
	{Role: user.RoleManager, Page: permission.PageSubscriptions, CanView: true, CanAdd: true, CanEdit: true, CanDelete: true, CanPrint: true},
	{Role: user.RoleManager, Page: permission.PagePayments, CanView: true, CanAdd: true, CanEdit: true, CanDelete: true, CanPrint: true},
	{Role: user.RoleManager, Page: permission.PageAttendance, CanView: true, CanAdd: true, CanEdit: true},
	{Role: user.RoleManager, Page: permission.PageReports, CanView: true, CanPrint: true},
	{Role: user.RoleManager, Page: permission.PageSettings, CanView: true, CanEdit: true},
	{Role: user.RoleReception, Page: permission.PageMembers, CanView: true, CanAdd: true, CanEdit: true},
	{Role: user.RoleReception, Page: permission.PageSubscriptions, CanView: true, CanAdd: true, CanPrint: true},
	{Role: user.RoleReception, Page: permission.PagePayments, CanView: true, CanAdd: true, CanPrint: true},
	{Role: user.RoleReception, Page: permission.PageAttendance, CanView: true, CanAdd: true, CanEdit: true},
}

// ExecuteSeedPermissions installs the default matrix for any role that has
// no rows yet. Roles that already have rows keep them untouched, so an
// operator's edits survive restarts.
func ExecuteSeedPermissions(ctx context.Context, store PermissionStore) error {
	seeded := 0
	for _, role := range []string{user.RoleManager, user.RoleReception} {
		existing, err := store.ListByRole(ctx, role)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}
		for _, perm := range defaultPermissions {
			if perm.Role != role {
				continue
			}
			if err := store.Save(ctx, perm); err != nil {
				return err
			}
			seeded++
		}
	}

	if seeded > 0 {
		slog.Info("permission_event", "event", "default_permissions_seeded", "count", seeded)
	}
	return nil
}
