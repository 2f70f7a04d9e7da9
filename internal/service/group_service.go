package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/cohouse/internal/middleware"
	"github.com/mmynk/cohouse/internal/models"
	"github.com/mmynk/cohouse/internal/storage"
	"github.com/mmynk/cohouse/pkg/api"
	"github.com/mmynk/cohouse/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

func toAPIGroup(group *models.Group) *api.Group {
	members := make([]api.Member, len(group.Members))
	for i, m := range group.Members {
		members[i] = api.Member{ID: m.ID, DisplayName: m.DisplayName}
	}
	return &api.Group{
		ID:        group.ID,
		Name:      group.Name,
		Members:   members,
		CreatedAt: group.CreatedAt,
	}
}

// fromAPIMembers validates member input, dropping repeats of the same ID.
func fromAPIMembers(in []api.Member) ([]models.Member, error) {
	seen := make(map[string]bool, len(in))
	out := make([]models.Member, 0, len(in))
	for _, m := range in {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, errors.New("member id required")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		name := strings.TrimSpace(m.DisplayName)
		if name == "" {
			name = id
		}
		out = append(out, models.Member{ID: id, DisplayName: name})
	}
	return out, nil
}

// CreateGroup creates a new household. The caller is always a member; if
// they aren't listed, they're added first.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("name required"))
	}
	members, err := fromAPIMembers(req.Msg.Members)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	group := &models.Group{Name: name, Members: members}
	if !group.HasMember(userID) {
		creator := models.Member{ID: userID, DisplayName: middleware.GetDisplayName(ctx)}
		if creator.DisplayName == "" {
			creator.DisplayName = userID
		}
		group.Members = append([]models.Member{creator}, group.Members...)
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, storageError("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForMember(ctx, userID)
	if err != nil {
		return nil, storageError("ListGroups", err)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.Debug("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// AddMembers invites new members into an existing group.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	members, err := fromAPIMembers(req.Msg.Members)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if len(members) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("at least one member required"))
	}

	if err := s.store.AddGroupMembers(ctx, req.Msg.GroupID, members); err != nil {
		return nil, storageError("AddMembers", err)
	}

	updated, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storageError("GetGroup", err)
	}

	slog.Info("Members added", "group_id", updated.ID, "members_count", len(updated.Members))

	return connect.NewResponse(&api.AddMembersResponse{Group: toAPIGroup(updated)}), nil
}

// DeleteGroup removes a group and everything recorded in it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, storageError("DeleteGroup", err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}
