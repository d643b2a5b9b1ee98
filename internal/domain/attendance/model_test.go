package attendance_test

import (
	"testing"
	"time"

	"clubdesk/internal/domain/attendance"
)

var checkIn = time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)

// TestSessionValidation tests validation of Session.
func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		session attendance.Session
		wantErr bool
	}{
		{
			name:    "valid open session",
			session: attendance.Session{MemberID: "m1", CheckIn: checkIn},
			wantErr: false,
		},
		{
			name:    "valid closed session",
			session: attendance.Session{MemberID: "m1", CheckIn: checkIn, CheckOut: checkIn.Add(time.Hour)},
			wantErr: false,
		},
		{
			name:    "missing member",
			session: attendance.Session{CheckIn: checkIn},
			wantErr: true,
		},
		{
			name:    "missing check-in",
			session: attendance.Session{MemberID: "m1"},
			wantErr: true,
		},
		{
			name:    "check-out before check-in",
			session: attendance.Session{MemberID: "m1", CheckIn: checkIn, CheckOut: checkIn.Add(-time.Minute)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSessionClose tests closing an open session exactly once.
func TestSessionClose(t *testing.T) {
	s := attendance.Session{MemberID: "m1", CheckIn: checkIn}
	if !s.IsOpen() {
		t.Fatal("new session should be open")
	}

	out := checkIn.Add(90 * time.Minute)
	if err := s.Close(out); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if s.IsOpen() {
		t.Error("session should be closed")
	}
	if s.Duration() != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", s.Duration())
	}

	if err := s.Close(out.Add(time.Minute)); err != attendance.ErrAlreadyCheckedOut {
		t.Errorf("second Close() error = %v, want ErrAlreadyCheckedOut", err)
	}
}

// TestSessionCloseBeforeCheckIn tests rejection of a backwards check-out.
func TestSessionCloseBeforeCheckIn(t *testing.T) {
	s := attendance.Session{MemberID: "m1", CheckIn: checkIn}
	if err := s.Close(checkIn.Add(-time.Hour)); err == nil {
		t.Error("Close() before check-in should fail")
	}
}
