package attendance

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrAlreadyCheckedOut = errors.New("session is already checked out")
)

// Session holds state for a check-in/check-out pair. A member has at most
// one open session (CheckOut unset) at any time.
type Session struct {
	ID       string
	MemberID string
	CheckIn  time.Time
	CheckOut time.Time // zero while the session is open
	Notes    string
}

// Validate checks if the Session has valid data.
// PRE: Session struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MemberID must not be empty, CheckIn must be set
func (s *Session) Validate() error {
	if s.MemberID == "" {
		return errors.New("session must be associated with a member")
	}
	if s.CheckIn.IsZero() {
		return errors.New("check-in time must be set")
	}
	if !s.CheckOut.IsZero() && s.CheckOut.Before(s.CheckIn) {
		return errors.New("check-out time cannot be before check-in time")
	}
	return nil
}

// IsOpen returns true while the member has not checked out.
// INVARIANT: Session fields are not mutated
func (s *Session) IsOpen() bool {
	return s.CheckOut.IsZero()
}

// Close stamps the check-out time on an open session.
// PRE: session is open, at is not before CheckIn
// POST: CheckOut is set to at
func (s *Session) Close(at time.Time) error {
	if !s.IsOpen() {
		return ErrAlreadyCheckedOut
	}
	if at.Before(s.CheckIn) {
		return errors.New("check-out time cannot be before check-in time")
	}
	s.CheckOut = at
	return nil
}

// Duration returns the session length, or time since check-in while open.
// PRE: Session is initialized with CheckIn
// POST: Returns duration, or time since check-in if still open
func (s *Session) Duration() time.Duration {
	if s.IsOpen() {
		return time.Since(s.CheckIn)
	}
	return s.CheckOut.Sub(s.CheckIn)
}
