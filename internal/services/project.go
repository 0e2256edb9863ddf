package services

import (
	"context"

	"github.com/JhonW67/ProjectHub/types"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Project, int, error)
	Get(ctx context.Context, id int) (types.Project, error)
	AverageScore(ctx context.Context, projectID int) (*float64, error)
	ListByGroup(ctx context.Context, groupID int) ([]types.Project, error)
	Create(ctx context.Context, project types.Project) (types.Project, error)
	Update(ctx context.Context, project types.Project) (types.Project, error)
}

// ProjectService encapsulates project use-cases.
type ProjectService struct {
	repo   ProjectRepository
	groups GroupRepository
}

func NewProjectService(repo ProjectRepository, groups GroupRepository) *ProjectService {
	return &ProjectService{repo: repo, groups: groups}
}

func (s *ProjectService) List(ctx context.Context, offset, limit int) ([]types.Project, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// Get returns a project with its average evaluation score populated.
func (s *ProjectService) Get(ctx context.Context, id int) (types.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Project{}, err
	}
	avg, err := s.repo.AverageScore(ctx, id)
	if err != nil {
		return types.Project{}, err
	}
	project.AverageScore = avg
	return project, nil
}

func (s *ProjectService) ListByGroup(ctx context.Context, groupID int) ([]types.Project, error) {
	return s.repo.ListByGroup(ctx, groupID)
}

// Create registers a project for a group. Only members of the owning
// group may submit on its behalf.
func (s *ProjectService) Create(ctx context.Context, project types.Project, userID int) (types.Project, error) {
	member, err := s.groups.IsMember(ctx, project.GroupID, userID)
	if err != nil {
		return types.Project{}, err
	}
	if !member {
		return types.Project{}, ErrNotGroupMember
	}
	return s.repo.Create(ctx, project)
}

// Update modifies a project, keeping its group ownership intact. Only
// members of the owning group may edit.
func (s *ProjectService) Update(ctx context.Context, project types.Project, userID int) (types.Project, error) {
	current, err := s.repo.Get(ctx, project.ID)
	if err != nil {
		return types.Project{}, err
	}

	member, err := s.groups.IsMember(ctx, current.GroupID, userID)
	if err != nil {
		return types.Project{}, err
	}
	if !member {
		return types.Project{}, ErrNotGroupMember
	}

	project.GroupID = current.GroupID
	return s.repo.Update(ctx, project)
}
