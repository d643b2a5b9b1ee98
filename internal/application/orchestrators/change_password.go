package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/user"
)

// ChangePasswordStore defines the user store interface for password
// changes.
type ChangePasswordStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	UserStore ChangePasswordStore
	Now       func() time.Time // injectable for testing
}

// ExecuteChangePassword verifies the current password and replaces it.
// Accounts still carrying a legacy salted digest are upgraded to bcrypt
// here, since this is the first moment the plaintext is available again.
// PRE: current password is correct; new password >= 8 characters
// POST: PasswordHash is a bcrypt hash, legacy salt cleared
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if input.UserID == "" {
		return fault.Validation("user_id", "user id is required")
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	u, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := u.CheckPassword(input.CurrentPassword); err != nil {
		return fault.Validation("current_password", "current password is incorrect")
	}
	if err := u.SetPassword(input.NewPassword); err != nil {
		return fault.Validation("new_password", err.Error())
	}
	u.UpdatedAt = now

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_changed", "user_id", u.ID, "username", u.Username)
	return nil
}
