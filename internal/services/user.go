package services

import (
	"context"

	"github.com/JhonW67/ProjectHub/types"
)

// UserService encapsulates user profile and administration use-cases.
type UserService struct {
	users  UserRepository
	groups GroupRepository
}

func NewUserService(users UserRepository, groups GroupRepository) *UserService {
	return &UserService{users: users, groups: groups}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.users.GetByID(ctx, id)
}

// GroupOf returns the group the user belongs to, with members populated.
func (s *UserService) GroupOf(ctx context.Context, userID int) (types.Group, error) {
	group, err := s.groups.GetByUserID(ctx, userID)
	if err != nil {
		return types.Group{}, err
	}
	members, err := s.groups.Members(ctx, group.ID)
	if err != nil {
		return types.Group{}, err
	}
	group.Members = members
	return group, nil
}

// UpdateProfile updates the caller's mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, user types.User) (types.User, error) {
	return s.users.UpdateProfile(ctx, user)
}

// UpdateRole changes a user's role. All role elevation goes through here,
// server-side; nothing client-supplied is trusted beyond the new role
// value itself, which must belong to the closed set.
func (s *UserService) UpdateRole(ctx context.Context, id int, role string) error {
	if !types.ValidRole(role) {
		return ErrInvalidRole
	}
	return s.users.UpdateRole(ctx, id, role)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}
