package setting

import (
	"context"

	domain "clubdesk/internal/domain/setting"
)

// Store persists Setting state.
type Store interface {
	Get(ctx context.Context, key string) (domain.Setting, error)
	Set(ctx context.Context, value domain.Setting) error
	List(ctx context.Context) ([]domain.Setting, error)
}
