package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/user"

	"github.com/google/uuid"
)

// CreateUserStore defines the user store interface for account creation.
type CreateUserStore interface {
	Save(ctx context.Context, u user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// CreateUserInput carries input for the create-user orchestrator.
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	UserStore  CreateUserStore
	GenerateID func() string    // injectable for testing
	Now        func() time.Time // injectable for testing
}

// ExecuteCreateUser creates an active account with a bcrypt-hashed
// password.
// PRE: username is unique; password >= 8 characters; role is valid
// POST: user persisted active
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (user.User, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	generateID := uuid.NewString
	if deps.GenerateID != nil {
		generateID = deps.GenerateID
	}

	u := user.User{
		ID:        generateID(),
		Username:  input.Username,
		FullName:  input.FullName,
		Role:      input.Role,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return user.User{}, fault.Validation("", err.Error())
	}
	if err := u.SetPassword(input.Password); err != nil {
		return user.User{}, fault.Validation("password", err.Error())
	}

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "user_created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// ExecuteSeedAdmin ensures the default admin account exists. Called on
// every startup; a no-op when the username is already taken.
// POST: an active admin with the given username exists
func ExecuteSeedAdmin(ctx context.Context, username, password string, deps CreateUserDeps) error {
	if _, err := deps.UserStore.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !fault.IsNotFound(err) {
		return err
	}

	_, err := ExecuteCreateUser(ctx, CreateUserInput{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     user.RoleAdmin,
	}, deps)
	if err != nil {
		return err
	}
	slog.Info("auth_event", "event", "admin_seeded", "username", username)
	return nil
}
