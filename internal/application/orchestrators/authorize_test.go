package orchestrators

import (
	"context"
	"testing"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/permission"
	"clubdesk/internal/domain/user"
)

// mockPermissionStore keys rows by role/page.
type mockPermissionStore struct {
	rows map[string]permission.Permission
}

func newMockPermissionStore() *mockPermissionStore {
	return &mockPermissionStore{rows: make(map[string]permission.Permission)}
}

func (m *mockPermissionStore) Get(_ context.Context, role, page string) (permission.Permission, error) {
	perm, ok := m.rows[role+"/"+page]
	if !ok {
		return permission.Permission{}, fault.NotFound("permission", role+"/"+page)
	}
	return perm, nil
}

func (m *mockPermissionStore) Save(_ context.Context, value permission.Permission) error {
	m.rows[value.Role+"/"+value.Page] = value
	return nil
}

func (m *mockPermissionStore) ListByRole(_ context.Context, role string) ([]permission.Permission, error) {
	var results []permission.Permission
	for _, perm := range m.rows {
		if perm.Role == role {
			results = append(results, perm)
		}
	}
	return results, nil
}

func TestExecuteCheckPermission(t *testing.T) {
	store := newMockPermissionStore()
	store.rows["reception/members"] = permission.Permission{
		Role: "reception", Page: permission.PageMembers, CanView: true, CanAdd: true,
	}

	tests := []struct {
		name    string
		role    string
		page    string
		action  string
		allowed bool
	}{
		{"admin bypasses matrix", user.RoleAdmin, permission.PageUsers, "delete", true},
		{"granted action", "reception", permission.PageMembers, "add", true},
		{"denied action on known row", "reception", permission.PageMembers, "delete", false},
		{"missing row denies", "reception", permission.PageReports, "view", false},
		{"unknown action denies", "reception", permission.PageMembers, "export", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := ExecuteCheckPermission(context.Background(), tt.role, tt.page, tt.action, store)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if allowed != tt.allowed {
				t.Errorf("expected allowed=%v, got %v", tt.allowed, allowed)
			}
		})
	}
}

func TestExecuteSavePermission(t *testing.T) {
	store := newMockPermissionStore()

	perm := permission.Permission{Role: " reception ", Page: permission.PageReports, CanView: true}
	if err := ExecuteSavePermission(context.Background(), perm, store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved, ok := store.rows["reception/reports"]
	if !ok {
		t.Fatal("expected the trimmed row to be saved")
	}
	if !saved.CanView || saved.CanDelete {
		t.Errorf("unexpected saved row: %+v", saved)
	}
}

func TestExecuteSavePermissionRejectsAdminRow(t *testing.T) {
	store := newMockPermissionStore()

	err := ExecuteSavePermission(context.Background(), permission.Permission{Role: user.RoleAdmin, Page: permission.PageUsers}, store)
	if !fault.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Error("no row should be saved for the admin role")
	}
}

func TestExecuteSeedPermissionsIdempotent(t *testing.T) {
	store := newMockPermissionStore()

	if err := ExecuteSeedPermissions(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.rows) != len(defaultPermissions) {
		t.Fatalf("expected %d seeded rows, got %d", len(defaultPermissions), len(store.rows))
	}

	// An operator edit must survive a reseed.
	edited := store.rows["reception/members"]
	edited.CanAdd = false
	store.rows["reception/members"] = edited

	if err := ExecuteSeedPermissions(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.rows["reception/members"].CanAdd {
		t.Error("reseeding must not overwrite existing rows")
	}
}
