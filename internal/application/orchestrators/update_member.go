package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/member"
)

// UpdateMemberStore defines the member store interface needed for updates.
type UpdateMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
}

// UpdateMemberInput carries the editable member fields. The member code
// and join date are immutable once assigned.
type UpdateMemberInput struct {
	MemberID  string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Gender    string
	BirthDate string
	Address   string
	Notes     string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore UpdateMemberStore
	Now         func() time.Time // injectable for testing
}

// ExecuteUpdateMember applies edited contact details to an existing member.
// PRE: member exists
// POST: editable fields replaced, updated_at advanced; code, status and
// join date unchanged
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (member.Member, error) {
	if input.MemberID == "" {
		return member.Member{}, fault.Validation("member_id", "member id is required")
	}
	if input.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", input.BirthDate); err != nil {
			return member.Member{}, fault.Validation("birth_date", "birth date must be YYYY-MM-DD")
		}
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return member.Member{}, err
	}

	m.FirstName = input.FirstName
	m.LastName = input.LastName
	m.Phone = input.Phone
	m.Email = input.Email
	m.Gender = input.Gender
	m.BirthDate = input.BirthDate
	m.Address = input.Address
	m.Notes = input.Notes
	m.UpdatedAt = now

	if err := m.Validate(); err != nil {
		return member.Member{}, fault.Validation("", err.Error())
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID, "code", m.Code)
	return m, nil
}
