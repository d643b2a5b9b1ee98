package user

import (
	"context"

	domain "clubdesk/internal/domain/user"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}
