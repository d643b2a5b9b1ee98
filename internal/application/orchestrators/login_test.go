package orchestrators

import (
	"context"
	"testing"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/user"
)

// mockUserStore implements the user store interfaces used by the identity
// orchestrators.
type mockUserStore struct {
	byID       map[string]user.User
	byUsername map[string]user.User
	saved      []user.User
}

func newMockUserStore(users ...user.User) *mockUserStore {
	m := &mockUserStore{byID: map[string]user.User{}, byUsername: map[string]user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
		m.byUsername[u.Username] = u
	}
	return m
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, fault.NotFound("user", id)
	}
	return u, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (user.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return user.User{}, fault.NotFound("user", username)
	}
	return u, nil
}

func (m *mockUserStore) Save(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	m.saved = append(m.saved, u)
	return nil
}

func testUser(t *testing.T, username, password string, active bool) user.User {
	t.Helper()
	u := user.User{ID: "u-" + username, Username: username, Role: user.RoleReception, IsActive: active}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	return u
}

func TestExecuteLogin_Success(t *testing.T) {
	store := newMockUserStore(testUser(t, "front-desk", "letmein-2025", true))
	deps := LoginDeps{UserStore: store}

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "front-desk",
		Password: "letmein-2025",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != user.RoleReception {
		t.Errorf("expected reception role, got %q", result.Role)
	}
}

func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockUserStore(testUser(t, "front-desk", "letmein-2025", true))
	deps := LoginDeps{UserStore: store}

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "front-desk",
		Password: "wrong",
	}, deps)
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestExecuteLogin_UnknownUserSameError(t *testing.T) {
	store := newMockUserStore()
	deps := LoginDeps{UserStore: store}

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "nobody",
		Password: "whatever1",
	}, deps)
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestExecuteLogin_InactiveUserBlocked(t *testing.T) {
	store := newMockUserStore(testUser(t, "gone", "letmein-2025", false))
	deps := LoginDeps{UserStore: store}

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "gone",
		Password: "letmein-2025",
	}, deps)
	if err != ErrUserInactive {
		t.Errorf("expected ErrUserInactive, got %v", err)
	}
}

func TestExecuteCreateUser_HashesPassword(t *testing.T) {
	store := newMockUserStore()
	deps := CreateUserDeps{UserStore: store, GenerateID: fixedID, Now: fixedNow}

	created, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		Username: "manager1",
		Password: "s3cure-pass",
		FullName: "Dana Aziz",
		Role:     user.RoleManager,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cure-pass" {
		t.Error("expected a hashed password")
	}
	if err := created.CheckPassword("s3cure-pass"); err != nil {
		t.Errorf("expected password to verify: %v", err)
	}
	if !created.IsActive {
		t.Error("expected new user active")
	}
}

func TestExecuteCreateUser_ShortPasswordRejected(t *testing.T) {
	deps := CreateUserDeps{UserStore: newMockUserStore(), GenerateID: fixedID, Now: fixedNow}

	_, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		Username: "manager1",
		Password: "short",
		Role:     user.RoleManager,
	}, deps)
	if !fault.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestExecuteSeedAdmin_Idempotent(t *testing.T) {
	store := newMockUserStore()
	deps := CreateUserDeps{UserStore: store, GenerateID: fixedID, Now: fixedNow}

	if err := ExecuteSeedAdmin(context.Background(), "admin", "first-password", deps); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := ExecuteSeedAdmin(context.Background(), "admin", "other-password", deps); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if len(store.saved) != 1 {
		t.Errorf("expected a single save across two seeds, got %d", len(store.saved))
	}
	if store.byUsername["admin"].Role != user.RoleAdmin {
		t.Errorf("expected admin role, got %q", store.byUsername["admin"].Role)
	}
}

func TestExecuteChangePassword_UpgradesAndVerifies(t *testing.T) {
	u := testUser(t, "front-desk", "old-password1", true)
	store := newMockUserStore(u)
	deps := ChangePasswordDeps{UserStore: store, Now: fixedNow}

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		UserID:          u.ID,
		CurrentPassword: "old-password1",
		NewPassword:     "new-password1",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := store.byID[u.ID]
	if err := updated.CheckPassword("new-password1"); err != nil {
		t.Errorf("expected new password to verify: %v", err)
	}
	if err := updated.CheckPassword("old-password1"); err == nil {
		t.Error("expected old password rejected")
	}
}

func TestExecuteChangePassword_WrongCurrentPassword(t *testing.T) {
	u := testUser(t, "front-desk", "old-password1", true)
	store := newMockUserStore(u)
	deps := ChangePasswordDeps{UserStore: store, Now: fixedNow}

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		UserID:          u.ID,
		CurrentPassword: "guess",
		NewPassword:     "new-password1",
	}, deps)
	if !fault.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Error("expected nothing saved on rejection")
	}
}
