package services

import (
	"context"

	"github.com/JhonW67/ProjectHub/types"
)

// EvaluationRepository defines persistence operations for evaluations.
type EvaluationRepository interface {
	ListByProject(ctx context.Context, projectID int) ([]types.Evaluation, error)
	Create(ctx context.Context, evaluation types.Evaluation) (types.Evaluation, error)
}

// EvaluationService encapsulates project evaluation use-cases.
type EvaluationService struct {
	repo     EvaluationRepository
	projects ProjectRepository
	notifier *Notifier
}

func NewEvaluationService(repo EvaluationRepository, projects ProjectRepository, notifier *Notifier) *EvaluationService {
	return &EvaluationService{repo: repo, projects: projects, notifier: notifier}
}

// ListByProject returns the evaluations recorded for a project. The
// project must exist.
func (s *EvaluationService) ListByProject(ctx context.Context, projectID int) ([]types.Evaluation, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Create records a professor's score for a project. The professor is
// always taken from the verified token, never from the payload.
func (s *EvaluationService) Create(ctx context.Context, evaluation types.Evaluation) (types.Evaluation, error) {
	if evaluation.Score < 0 || evaluation.Score > 10 {
		return types.Evaluation{}, ErrInvalidScore
	}

	project, err := s.projects.Get(ctx, evaluation.ProjectID)
	if err != nil {
		return types.Evaluation{}, err
	}

	created, err := s.repo.Create(ctx, evaluation)
	if err != nil {
		return types.Evaluation{}, err
	}

	s.notifier.EvaluationCreated(created, project)
	return created, nil
}
