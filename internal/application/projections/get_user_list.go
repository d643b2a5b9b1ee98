package projections

import (
	"context"

	"clubdesk/internal/domain/user"
)

// UserListStore lists the service's accounts.
type UserListStore interface {
	List(ctx context.Context) ([]user.User, error)
	Count(ctx context.Context) (int, error)
}

// UserListResult carries the account list for the admin view. Password
// hashes travel with the entities; the caller must not render them.
type UserListResult struct {
	Users []user.User
	Total int
}

// QueryGetUserList lists every account with the total.
func QueryGetUserList(ctx context.Context, store UserListStore) (UserListResult, error) {
	users, err := store.List(ctx)
	if err != nil {
		return UserListResult{}, err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return UserListResult{}, err
	}
	return UserListResult{Users: users, Total: total}, nil
}
