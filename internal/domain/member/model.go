package member

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Member code format constants.
const (
	CodePrefix = "MEM-"
	CodeDigits = 4
)

// Business rule constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusFrozen   = "frozen"
)

// Domain errors
var (
	ErrAlreadyInactive = errors.New("member is already inactive")
	ErrAlreadyActive   = errors.New("member is already active")
	ErrMalformedCode   = errors.New("member code does not match MEM-NNNN")
)

// Member holds state for the concept.
type Member struct {
	ID        string
	Code      string // MEM-0001, unique and never reused
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Gender    string
	BirthDate string // YYYY-MM-DD, optional
	Address   string
	Notes     string
	Status    string
	JoinDate  string // YYYY-MM-DD
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: FirstName, LastName and Phone must not be empty
func (m *Member) Validate() error {
	if strings.TrimSpace(m.FirstName) == "" {
		return errors.New("first name cannot be empty")
	}
	if strings.TrimSpace(m.LastName) == "" {
		return errors.New("last name cannot be empty")
	}
	if len(m.FirstName) > MaxNameLength || len(m.LastName) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if strings.TrimSpace(m.Phone) == "" {
		return errors.New("phone cannot be empty")
	}
	if m.Status != StatusActive && m.Status != StatusInactive && m.Status != StatusFrozen {
		return errors.New("status must be 'active', 'inactive', or 'frozen'")
	}
	return nil
}

// FullName returns the concatenated display name.
// INVARIANT: Member fields are not mutated
func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// IsActive returns true if the member is currently active.
// INVARIANT: Status field is not mutated
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Archive sets the member status to inactive (soft delete).
// PRE: Member is not already inactive
// POST: Status is set to inactive
func (m *Member) Archive() error {
	if m.Status == StatusInactive {
		return ErrAlreadyInactive
	}
	m.Status = StatusInactive
	return nil
}

// Activate sets the member status back to active.
// PRE: Member is not already active
// POST: Status is set to active
func (m *Member) Activate() error {
	if m.Status == StatusActive {
		return ErrAlreadyActive
	}
	m.Status = StatusActive
	return nil
}

// NextCode returns the code following last, or the first code when last is
// empty. Codes are never reused: the sequence only moves forward, even after
// members are archived.
// PRE: last is empty or a previously issued MEM-NNNN code
// POST: Returns a zero-padded code strictly greater than last
func NextCode(last string) (string, error) {
	if last == "" {
		return fmt.Sprintf("%s%0*d", CodePrefix, CodeDigits, 1), nil
	}
	suffix, ok := strings.CutPrefix(last, CodePrefix)
	if !ok {
		return "", ErrMalformedCode
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return "", ErrMalformedCode
	}
	return fmt.Sprintf("%s%0*d", CodePrefix, CodeDigits, n+1), nil
}
