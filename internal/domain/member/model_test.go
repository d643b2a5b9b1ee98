package member_test

import (
	"testing"

	"clubdesk/internal/domain/member"
)

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		member  member.Member
		wantErr bool
	}{
		{
			name: "valid member",
			member: member.Member{
				ID:        "123",
				Code:      "MEM-0001",
				FirstName: "Ali",
				LastName:  "Hassan",
				Phone:     "0501234567",
				Status:    member.StatusActive,
			},
			wantErr: false,
		},
		{
			name: "valid frozen member",
			member: member.Member{
				FirstName: "Ali",
				LastName:  "Hassan",
				Phone:     "0501234567",
				Status:    member.StatusFrozen,
			},
			wantErr: false,
		},
		{
			name: "empty first name",
			member: member.Member{
				FirstName: "  ",
				LastName:  "Hassan",
				Phone:     "0501234567",
				Status:    member.StatusActive,
			},
			wantErr: true,
		},
		{
			name: "empty last name",
			member: member.Member{
				FirstName: "Ali",
				Phone:     "0501234567",
				Status:    member.StatusActive,
			},
			wantErr: true,
		},
		{
			name: "missing phone",
			member: member.Member{
				FirstName: "Ali",
				LastName:  "Hassan",
				Status:    member.StatusActive,
			},
			wantErr: true,
		},
		{
			name: "invalid status",
			member: member.Member{
				FirstName: "Ali",
				LastName:  "Hassan",
				Phone:     "0501234567",
				Status:    "deleted",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestMemberFullName tests the concatenated display name.
func TestMemberFullName(t *testing.T) {
	m := member.Member{FirstName: "Ali", LastName: "Hassan"}
	if got := m.FullName(); got != "Ali Hassan" {
		t.Errorf("FullName() = %q, want %q", got, "Ali Hassan")
	}
}

// TestMemberArchiveActivate tests the soft-delete round trip.
func TestMemberArchiveActivate(t *testing.T) {
	m := member.Member{FirstName: "Ali", LastName: "Hassan", Phone: "0501234567", Status: member.StatusActive}

	if err := m.Archive(); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if m.Status != member.StatusInactive {
		t.Errorf("status = %q, want %q", m.Status, member.StatusInactive)
	}
	if err := m.Archive(); err != member.ErrAlreadyInactive {
		t.Errorf("second Archive() error = %v, want ErrAlreadyInactive", err)
	}

	if err := m.Activate(); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if m.Status != member.StatusActive {
		t.Errorf("status = %q, want %q", m.Status, member.StatusActive)
	}
	if err := m.Activate(); err != member.ErrAlreadyActive {
		t.Errorf("second Activate() error = %v, want ErrAlreadyActive", err)
	}
}

// TestNextCode tests sequential member code generation.
func TestNextCode(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		want    string
		wantErr bool
	}{
		{name: "first member", last: "", want: "MEM-0001"},
		{name: "increment", last: "MEM-0001", want: "MEM-0002"},
		{name: "mid sequence", last: "MEM-0042", want: "MEM-0043"},
		{name: "past padding width", last: "MEM-9999", want: "MEM-10000"},
		{name: "wrong prefix", last: "SUB-0001", wantErr: true},
		{name: "non-numeric suffix", last: "MEM-00AB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := member.NextCode(tt.last)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NextCode(%q) error = %v, wantErr %v", tt.last, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NextCode(%q) = %q, want %q", tt.last, got, tt.want)
			}
		})
	}
}
