package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/attendance"
	"clubdesk/internal/domain/fault"
)

// CheckOutAttendanceStore defines the attendance store interface for
// check-out.
type CheckOutAttendanceStore interface {
	Save(ctx context.Context, value attendance.Session) error
	GetOpenByMember(ctx context.Context, memberID string) (attendance.Session, error)
}

// CheckOutDeps holds dependencies for CheckOut.
type CheckOutDeps struct {
	AttendanceStore CheckOutAttendanceStore
	Now             func() time.Time // injectable for testing
}

// ExecuteCheckOut closes the member's most recent open session. Only that
// one session is touched.
// PRE: member has an open session
// POST: the session's check_out is set
func ExecuteCheckOut(ctx context.Context, memberID string, deps CheckOutDeps) (attendance.Session, error) {
	if memberID == "" {
		return attendance.Session{}, fault.Validation("member_id", "member id is required")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	session, err := deps.AttendanceStore.GetOpenByMember(ctx, memberID)
	if err != nil {
		return attendance.Session{}, err
	}
	if err := session.Close(now); err != nil {
		return attendance.Session{}, fault.Conflict(err.Error(), session.ID)
	}
	if err := deps.AttendanceStore.Save(ctx, session); err != nil {
		return attendance.Session{}, err
	}

	slog.Info("attendance_event", "event", "member_checked_out",
		"member_id", memberID,
		"session_id", session.ID,
		"duration_minutes", int(session.Duration().Minutes()))
	return session, nil
}
