package projections

import (
	"context"
	"strings"

	memberstore "clubdesk/internal/adapters/storage/member"
	"clubdesk/internal/domain/member"
)

// GetMemberListQuery carries input for the member list projection. A
// non-empty Search switches to substring matching over code, phone and
// name; Status and paging apply to plain listing only.
type GetMemberListQuery struct {
	Search string
	Status string
	Limit  int
	Offset int
}

// GetMemberListDeps holds dependencies for the member list projection.
type GetMemberListDeps struct {
	MemberStore MemberStore
}

// MemberListResult carries the page of members and the unfiltered total.
type MemberListResult struct {
	Members []member.Member
	Total   int
}

// QueryGetMemberList lists members, either paged by status or matched
// case-insensitively against a search term.
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) (MemberListResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	if term := strings.TrimSpace(query.Search); term != "" {
		members, err := deps.MemberStore.Search(ctx, term, limit)
		if err != nil {
			return MemberListResult{}, err
		}
		return MemberListResult{Members: members, Total: len(members)}, nil
	}

	filter := memberstore.ListFilter{Limit: limit, Offset: query.Offset, Status: query.Status}
	members, err := deps.MemberStore.List(ctx, filter)
	if err != nil {
		return MemberListResult{}, err
	}
	total, err := deps.MemberStore.Count(ctx, memberstore.ListFilter{Status: query.Status})
	if err != nil {
		return MemberListResult{}, err
	}
	return MemberListResult{Members: members, Total: total}, nil
}
