package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubdesk/internal/domain/fault"
	"clubdesk/internal/domain/member"
)

// MemberStatusStore defines the member store interface for status changes.
type MemberStatusStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
}

// MemberStatusDeps holds dependencies for the member status orchestrators.
type MemberStatusDeps struct {
	MemberStore MemberStatusStore
	Now         func() time.Time // injectable for testing
}

// ExecuteArchiveMember marks a member inactive. Archiving does not touch
// the member's subscriptions; billing history stays intact.
// POST: member status is inactive
func ExecuteArchiveMember(ctx context.Context, memberID string, deps MemberStatusDeps) (member.Member, error) {
	return changeMemberStatus(ctx, memberID, deps, "member_archived", func(m *member.Member) {
		m.Archive()
	})
}

// ExecuteActivateMember restores an archived member to active.
// POST: member status is active
func ExecuteActivateMember(ctx context.Context, memberID string, deps MemberStatusDeps) (member.Member, error) {
	return changeMemberStatus(ctx, memberID, deps, "member_activated", func(m *member.Member) {
		m.Activate()
	})
}

func changeMemberStatus(ctx context.Context, memberID string, deps MemberStatusDeps, event string, apply func(*member.Member)) (member.Member, error) {
	if memberID == "" {
		return member.Member{}, fault.Validation("member_id", "member id is required")
	}
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	m, err := deps.MemberStore.GetByID(ctx, memberID)
	if err != nil {
		return member.Member{}, err
	}
	apply(&m)
	m.UpdatedAt = now

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}
	slog.Info("member_event", "event", event, "member_id", m.ID, "code", m.Code)
	return m, nil
}

// ReactivateAllStore defines the store interface for the bulk reactivation.
type ReactivateAllStore interface {
	ReactivateAll(ctx context.Context) (int, error)
}

// ExecuteReactivateAllMembers flips every inactive member back to active.
// Used after bulk imports that arrive pre-archived.
// POST: no member remains inactive; returns the number updated
func ExecuteReactivateAllMembers(ctx context.Context, store ReactivateAllStore) (int, error) {
	n, err := store.ReactivateAll(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info("member_event", "event", "members_reactivated", "count", n)
	return n, nil
}
