package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateGroupCreatorIsAlwaysMember(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	ids := createTestUsers(t, store, "Ana", "Ben")

	group, err := svc.CreateGroup(ctx, ids[0], "Barkada", []string{ids[1]})
	require.NoError(t, err)
	require.Contains(t, group.MemberIDs, ids[0])
	require.Contains(t, group.MemberIDs, ids[1])

	// Naming yourself does not duplicate you.
	group, err = svc.CreateGroup(ctx, ids[0], "Solo-ish", ids)
	require.NoError(t, err)
	require.Len(t, group.MemberIDs, 2)
}

func TestGetGroupJoinsMembers(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	ids := createTestUsers(t, store, "Ana", "Ben")

	group, err := svc.CreateGroup(ctx, ids[0], "Flatmates", []string{ids[1]})
	require.NoError(t, err)

	view, err := svc.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, view.Members, 2)
	require.Equal(t, "Ana", view.Members[0].Name)
	require.Equal(t, "Ben", view.Members[1].Name)
}

func TestListGroupsForUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	ids := createTestUsers(t, store, "Ana", "Ben")

	_, err := svc.CreateGroup(ctx, ids[0], "One", nil)
	require.NoError(t, err)
	_, err = svc.CreateGroup(ctx, ids[0], "Two", []string{ids[1]})
	require.NoError(t, err)

	groups, err := svc.ListGroupsForUser(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, groups, 2)

	groups, err = svc.ListGroupsForUser(ctx, ids[1])
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "Two", groups[0].Name)
}
