package service

import (
	"context"
	"log/slog"

	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/storage"
)

// GroupView is a group joined with its member users for display.
type GroupView struct {
	Group   *models.Group
	Members []*models.User
}

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage
// backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group for the acting user. The creator is always a
// member, whether or not they named themselves.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID, name string, memberIDs []string) (*models.Group, error) {
	members := make([]string, 0, len(memberIDs)+1)
	if !contains(memberIDs, creatorID) {
		members = append(members, creatorID)
	}
	members = append(members, memberIDs...)

	group := &models.Group{Name: name, MemberIDs: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}
	slog.Info("Group created", "group_id", group.ID, "members", len(group.MemberIDs))
	return group, nil
}

// GetGroup retrieves a group with its member users, in membership order.
// Members whose accounts were deleted are omitted from the user list.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*GroupView, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, err
	}

	view := &GroupView{Group: group}
	for _, memberID := range group.MemberIDs {
		if user, ok := users[memberID]; ok {
			view.Members = append(view.Members, user)
		}
	}
	return view, nil
}

// ListGroupsForUser returns the groups the user belongs to, newest first.
func (s *GroupService) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsForUser(ctx, userID)
}
