package attendance

import (
	"context"

	domain "clubdesk/internal/domain/attendance"
)

// Store persists attendance Session state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	// GetOpenByMember returns the member's most recent open session.
	GetOpenByMember(ctx context.Context, memberID string) (domain.Session, error)
	ListByMember(ctx context.Context, memberID string, limit int) ([]domain.Session, error)
	CountBetween(ctx context.Context, from, to string) (int, error)
	CountByDay(ctx context.Context, from, to string) ([]DayCount, error)
}

// DayCount is the number of check-ins on one day.
type DayCount struct {
	Day   string // YYYY-MM-DD
	Count int
}
