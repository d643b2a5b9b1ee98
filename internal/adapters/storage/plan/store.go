package plan

import (
	"context"

	domain "clubdesk/internal/domain/plan"
)

// Store persists Plan (subscription type) state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Plan, error)
	Save(ctx context.Context, value domain.Plan) error
	List(ctx context.Context, activeOnly bool) ([]domain.Plan, error)
}
