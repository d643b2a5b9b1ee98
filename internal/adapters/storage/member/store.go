package member

import (
	"context"

	domain "clubdesk/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	GetByCode(ctx context.Context, code string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Member, error)
	LastCode(ctx context.Context) (string, error)
	ReactivateAll(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List/Count operations.
type ListFilter struct {
	Limit  int
	Offset int
	Status string
}
