package orchestrators

import (
	"context"
	"testing"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/member"
)

// mockMemberStoreForCreate implements CreateMemberStore for testing.
type mockMemberStoreForCreate struct {
	saved    []member.Member
	lastCode string
	saveErr  error
}

func (m *mockMemberStoreForCreate) Save(_ context.Context, mem member.Member) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, mem)
	return nil
}

func (m *mockMemberStoreForCreate) LastCode(_ context.Context) (string, error) {
	return m.lastCode, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
}

func fixedID() string {
	return "test-id-001"
}

func TestExecuteCreateMember_FirstMemberGetsFirstCode(t *testing.T) {
	store := &mockMemberStoreForCreate{}
	deps := CreateMemberDeps{MemberStore: store, GenerateID: fixedID, Now: fixedNow}

	got, err := ExecuteCreateMember(context.Background(), CreateMemberInput{
		FirstName: "Ali",
		LastName:  "Hassan",
		Phone:     "0501234567",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != "MEM-0001" {
		t.Errorf("expected code MEM-0001 for first member, got %q", got.Code)
	}
	if got.Status != member.StatusActive {
		t.Errorf("expected status active, got %q", got.Status)
	}
	if got.JoinDate != "2025-01-15" {
		t.Errorf("expected join date defaulted to today, got %q", got.JoinDate)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved member, got %d", len(store.saved))
	}
}

func TestExecuteCreateMember_CodeFollowsSequence(t *testing.T) {
	store := &mockMemberStoreForCreate{lastCode: "MEM-0041"}
	deps := CreateMemberDeps{MemberStore: store, GenerateID: fixedID, Now: fixedNow}

	got, err := ExecuteCreateMember(context.Background(), CreateMemberInput{
		FirstName: "Mona",
		LastName:  "Saleh",
		Phone:     "0507654321",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != "MEM-0042" {
		t.Errorf("expected code MEM-0042, got %q", got.Code)
	}
}

func TestExecuteCreateMember_ExplicitCodeKept(t *testing.T) {
	store := &mockMemberStoreForCreate{lastCode: "MEM-0041"}
	deps := CreateMemberDeps{MemberStore: store, GenerateID: fixedID, Now: fixedNow}

	got, err := ExecuteCreateMember(context.Background(), CreateMemberInput{
		Code:      "MEM-9000",
		FirstName: "Ziad",
		LastName:  "Karim",
		Phone:     "0500000000",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != "MEM-9000" {
		t.Errorf("expected supplied code kept, got %q", got.Code)
	}
}

func TestExecuteCreateMember_RequiredFields(t *testing.T) {
	deps := CreateMemberDeps{MemberStore: &mockMemberStoreForCreate{}, GenerateID: fixedID, Now: fixedNow}

	tests := []struct {
		name  string
		input CreateMemberInput
	}{
		{"missing first name", CreateMemberInput{LastName: "Hassan", Phone: "0501234567"}},
		{"missing last name", CreateMemberInput{FirstName: "Ali", Phone: "0501234567"}},
		{"missing phone", CreateMemberInput{FirstName: "Ali", LastName: "Hassan"}},
		{"bad birth date", CreateMemberInput{FirstName: "Ali", LastName: "Hassan", Phone: "0501234567", BirthDate: "15/01/1990"}},
		{"bad join date", CreateMemberInput{FirstName: "Ali", LastName: "Hassan", Phone: "0501234567", JoinDate: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteCreateMember(context.Background(), tt.input, deps)
			if !fault.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestExecuteCreateMember_ConflictSurfaces(t *testing.T) {
	store := &mockMemberStoreForCreate{saveErr: fault.Conflict("a member with this code already exists", "other")}
	deps := CreateMemberDeps{MemberStore: store, GenerateID: fixedID, Now: fixedNow}

	_, err := ExecuteCreateMember(context.Background(), CreateMemberInput{
		FirstName: "Ali",
		LastName:  "Hassan",
		Phone:     "0501234567",
	}, deps)
	if !fault.IsConflict(err) {
		t.Errorf("expected Conflict passed through, got %v", err)
	}
}
