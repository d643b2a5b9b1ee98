package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/member"

	"github.com/google/uuid"
)

// CreateMemberStore defines the member store interface needed for creation.
type CreateMemberStore interface {
	Save(ctx context.Context, m member.Member) error
	LastCode(ctx context.Context) (string, error)
}

// CreateMemberInput carries input for the create-member orchestrator.
type CreateMemberInput struct {
	Code      string // optional: assigned from the sequence when empty
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Gender    string
	BirthDate string // optional, YYYY-MM-DD
	Address   string
	Notes     string
	JoinDate  string // optional, defaults to today
}

// CreateMemberDeps holds dependencies for CreateMember.
type CreateMemberDeps struct {
	MemberStore CreateMemberStore
	GenerateID  func() string    // injectable for testing
	Now         func() time.Time // injectable for testing
}

// ExecuteCreateMember creates a member with a sequential MEM-NNNN code.
// The code scan is not atomic with the insert; a concurrent caller may
// draw the same code, and the store's UNIQUE constraint rejects the loser
// with the same Conflict the pre-check would have produced.
// PRE: FirstName, LastName and Phone are non-empty
// POST: Member persisted with status active and a unique code
func ExecuteCreateMember(ctx context.Context, input CreateMemberInput, deps CreateMemberDeps) (member.Member, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return member.Member{}, fault.Validation("first_name", "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return member.Member{}, fault.Validation("last_name", "last name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return member.Member{}, fault.Validation("phone", "phone is required")
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
	generateID := uuid.NewString
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	code := input.Code
	if code == "" {
		last, err := deps.MemberStore.LastCode(ctx)
		if err != nil {
			return member.Member{}, err
		}
		code, err = member.NextCode(last)
		if err != nil {
			return member.Member{}, fault.Storage("member.NextCode", err)
		}
	}

	joinDate := input.JoinDate
	if joinDate == "" {
		joinDate = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", joinDate); err != nil {
		return member.Member{}, fault.Validation("join_date", "join date must be YYYY-MM-DD")
	}

	m := member.Member{
		ID:        generateID(),
		Code:      code,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
		Address:   input.Address,
		Notes:     input.Notes,
		Status:    member.StatusActive,
		JoinDate:  joinDate,
		CreatedAt: now,
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, fault.Validation("", err.Error())
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_created", "member_id", m.ID, "code", m.Code, "name", m.FullName())
	return m, nil
}
