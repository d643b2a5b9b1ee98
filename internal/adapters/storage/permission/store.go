package permission

import (
	"context"

	domain "clubdesk/internal/domain/permission"
)

// Store persists the role -> page permission matrix (canonical
// permissions table only; the legacy role_permissions table is folded in
// by a migration and no longer read).
type Store interface {
	Get(ctx context.Context, role, page string) (domain.Permission, error)
	Save(ctx context.Context, value domain.Permission) error
	ListByRole(ctx context.Context, role string) ([]domain.Permission, error)
}
