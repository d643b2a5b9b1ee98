package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/attendance"
	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/member"

	"github.com/google/uuid"
)

// CheckInAttendanceStore defines the attendance store interface for
// check-in.
type CheckInAttendanceStore interface {
	Save(ctx context.Context, value attendance.Session) error
	GetOpenByMember(ctx context.Context, memberID string) (attendance.Session, error)
}

// CheckInMemberStore resolves the member checking in, by id or by the
// code on their card.
type CheckInMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	GetByCode(ctx context.Context, code string) (member.Member, error)
}

// CheckInInput carries input for the check-in orchestrator. Exactly one
// of MemberID and MemberCode is expected; MemberID wins when both are
// set.
type CheckInInput struct {
	MemberID   string
	MemberCode string
	Notes      string
}

// CheckInDeps holds dependencies for CheckIn.
type CheckInDeps struct {
	AttendanceStore CheckInAttendanceStore
	MemberStore     CheckInMemberStore
	GenerateID      func() string    // injectable for testing
	Now             func() time.Time // injectable for testing
}

// ExecuteCheckIn opens an attendance session for a member. A member can
// hold at most one open session; the pre-check and the store's unique
// index both reject a second with the same Conflict.
// PRE: member exists and has no open session
// POST: session persisted with check_in set and check_out empty
func ExecuteCheckIn(ctx context.Context, input CheckInInput, deps CheckInDeps) (attendance.Session, error) {
	if input.MemberID == "" && input.MemberCode == "" {
		return attendance.Session{}, fault.Validation("member_id", "member id or code is required")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	generateID := uuid.NewString
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	var m member.Member
	var err error
	if input.MemberID != "" {
		m, err = deps.MemberStore.GetByID(ctx, input.MemberID)
	} else {
		m, err = deps.MemberStore.GetByCode(ctx, input.MemberCode)
	}
	if err != nil {
		return attendance.Session{}, err
	}

	open, err := deps.AttendanceStore.GetOpenByMember(ctx, m.ID)
	if err == nil {
		return attendance.Session{}, fault.Conflict("member is already checked in", open.ID)
	}
	if !fault.IsNotFound(err) {
		return attendance.Session{}, err
	}

	session := attendance.Session{
		ID:       generateID(),
		MemberID: m.ID,
		CheckIn:  now,
		Notes:    input.Notes,
	}
	if err := deps.AttendanceStore.Save(ctx, session); err != nil {
		return attendance.Session{}, err
	}

	slog.Info("attendance_event", "event", "member_checked_in", "member_id", m.ID, "session_id", session.ID)
	return session, nil
}
