package projections

import (
	"context"
	"time"

	attendancestore "clubdesk/internal/adapters/storage/attendance"
	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/subscription"
)

// GetAttendanceStatsQuery carries input for the attendance stats
// projection. Dates are inclusive YYYY-MM-DD bounds.
type GetAttendanceStatsQuery struct {
	From string
	To   string
}

// GetAttendanceStatsDeps holds dependencies for the attendance stats
// projection.
type GetAttendanceStatsDeps struct {
	AttendanceStore AttendanceStore
}

// AttendanceStatsResult carries visit counts for a date range.
type AttendanceStatsResult struct {
	From        string
	To          string
	TotalVisits int
	ByDay       []attendancestore.DayCount
}

// QueryGetAttendanceStats counts check-ins over [From, To], grouped by
// day. Days without visits are absent from ByDay.
// PRE: From <= To
func QueryGetAttendanceStats(ctx context.Context, query GetAttendanceStatsQuery, deps GetAttendanceStatsDeps) (AttendanceStatsResult, error) {
	if _, err := time.Parse(subscription.DateLayout, query.From); err != nil {
		return AttendanceStatsResult{}, fault.Validation("from", "from must be YYYY-MM-DD")
	}
	if _, err := time.Parse(subscription.DateLayout, query.To); err != nil {
		return AttendanceStatsResult{}, fault.Validation("to", "to must be YYYY-MM-DD")
	}
	if query.From > query.To {
		return AttendanceStatsResult{}, fault.Validation("from", "from cannot be after to")
	}

	result := AttendanceStatsResult{From: query.From, To: query.To}
	var err error

	if result.TotalVisits, err = deps.AttendanceStore.CountBetween(ctx, query.From, query.To); err != nil {
		return AttendanceStatsResult{}, err
	}
	if result.ByDay, err = deps.AttendanceStore.CountByDay(ctx, query.From, query.To); err != nil {
		return AttendanceStatsResult{}, err
	}
	return result, nil
}
