package services

import (
	"context"
	"strings"

	"github.com/JhonW67/ProjectHub/types"
	"github.com/google/uuid"
)

const joinCodeLength = 8

// GroupRepository defines persistence operations for groups and membership.
type GroupRepository interface {
	List(ctx context.Context) ([]types.Group, error)
	Get(ctx context.Context, id int) (types.Group, error)
	GetByCode(ctx context.Context, code string) (types.Group, error)
	GetByUserID(ctx context.Context, userID int) (types.Group, error)
	Members(ctx context.Context, groupID int) ([]int, error)
	Create(ctx context.Context, group types.Group, founderID int) (types.Group, error)
	AddMember(ctx context.Context, groupID, userID int) error
	IsMember(ctx context.Context, groupID, userID int) (bool, error)
}

// GroupService encapsulates group use-cases.
type GroupService struct {
	repo GroupRepository
}

func NewGroupService(repo GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

func (s *GroupService) List(ctx context.Context) ([]types.Group, error) {
	return s.repo.List(ctx)
}

// Get returns a group with its member ids populated.
func (s *GroupService) Get(ctx context.Context, id int) (types.Group, error) {
	group, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Group{}, err
	}
	members, err := s.repo.Members(ctx, id)
	if err != nil {
		return types.Group{}, err
	}
	group.Members = members
	return group, nil
}

// Create makes a new group with the founder as its first member and a
// generated invite code.
func (s *GroupService) Create(ctx context.Context, name, description string, founderID int) (types.Group, error) {
	group := types.Group{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Code:        newJoinCode(),
	}
	return s.repo.Create(ctx, group, founderID)
}

// Join adds the user to the group identified by the invite code.
// An unknown code yields store.ErrNotFound; joining while already in a
// group yields store.ErrDuplicate.
func (s *GroupService) Join(ctx context.Context, code string, userID int) (types.Group, error) {
	group, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return types.Group{}, err
	}
	if err := s.repo.AddMember(ctx, group.ID, userID); err != nil {
		return types.Group{}, err
	}
	return group, nil
}

// newJoinCode derives a short, shareable invite code from a fresh UUID.
func newJoinCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:joinCodeLength])
}
