package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type memoryProjectRepo struct {
	projects map[int]types.Project
}

func (r *memoryProjectRepo) List(_ context.Context, offset, limit int) ([]types.Project, int, error) {
	out := make([]types.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memoryProjectRepo) Get(_ context.Context, id int) (types.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return types.Project{}, store.ErrNotFound
	}
	return project, nil
}

func (r *memoryProjectRepo) AverageScore(_ context.Context, _ int) (*float64, error) {
	return nil, nil
}

func (r *memoryProjectRepo) ListByGroup(_ context.Context, groupID int) ([]types.Project, error) {
	out := make([]types.Project, 0)
	for _, p := range r.projects {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryProjectRepo) Create(_ context.Context, project types.Project) (types.Project, error) {
	project.ID = len(r.projects) + 1
	r.projects[project.ID] = project
	return project, nil
}

func (r *memoryProjectRepo) Update(_ context.Context, project types.Project) (types.Project, error) {
	r.projects[project.ID] = project
	return project, nil
}

type memoryEvaluationRepo struct {
	evaluations []types.Evaluation
}

func (r *memoryEvaluationRepo) ListByProject(_ context.Context, projectID int) ([]types.Evaluation, error) {
	out := make([]types.Evaluation, 0)
	for _, e := range r.evaluations {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryEvaluationRepo) Create(_ context.Context, evaluation types.Evaluation) (types.Evaluation, error) {
	evaluation.ID = len(r.evaluations) + 1
	r.evaluations = append(r.evaluations, evaluation)
	return evaluation, nil
}

type memoryGroupRepo struct {
	members map[int][]int
}

func (r *memoryGroupRepo) List(_ context.Context) ([]types.Group, error) { return nil, nil }

func (r *memoryGroupRepo) Get(_ context.Context, _ int) (types.Group, error) {
	return types.Group{}, store.ErrNotFound
}

func (r *memoryGroupRepo) GetByCode(_ context.Context, _ string) (types.Group, error) {
	return types.Group{}, store.ErrNotFound
}

func (r *memoryGroupRepo) GetByUserID(_ context.Context, _ int) (types.Group, error) {
	return types.Group{}, store.ErrNotFound
}

func (r *memoryGroupRepo) Members(_ context.Context, groupID int) ([]int, error) {
	return r.members[groupID], nil
}

func (r *memoryGroupRepo) Create(_ context.Context, group types.Group, _ int) (types.Group, error) {
	return group, nil
}

func (r *memoryGroupRepo) AddMember(_ context.Context, groupID, userID int) error {
	r.members[groupID] = append(r.members[groupID], userID)
	return nil
}

func (r *memoryGroupRepo) IsMember(_ context.Context, groupID, userID int) (bool, error) {
	for _, id := range r.members[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func newProjectRouter(t *testing.T) (chi.Router, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager("project-handler-secret", time.Hour, 2*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	projects := &memoryProjectRepo{projects: map[int]types.Project{
		1: {ID: 1, GroupID: 1, Title: "Solar Tracker"},
	}}
	evaluations := &memoryEvaluationRepo{evaluations: []types.Evaluation{
		{ID: 1, ProjectID: 1, ProfessorID: 2, Score: 9},
	}}
	groups := &memoryGroupRepo{members: map[int][]int{1: {1}}}

	notifier := services.NewNotifier(nil, "", zerolog.Nop())
	projectService := services.NewProjectService(projects, groups)
	evaluationService := services.NewEvaluationService(evaluations, projects, notifier)

	r := chi.NewRouter()
	r.Route("/projects", func(r chi.Router) {
		ProjectRouter(r, projectService, evaluationService, tokens)
	})
	return r, tokens
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, id int, name, role string) string {
	t.Helper()
	token, err := tokens.IssueAccess(types.User{ID: id, Name: name, Role: role})
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	return "Bearer " + token
}

// Evaluation listing exposes grades and must never be reachable without
// a verified token.
func TestListEvaluationsRequiresAuth(t *testing.T) {
	router, _ := newProjectRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/1/evaluations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListEvaluationsWithToken(t *testing.T) {
	router, tokens := newProjectRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/1/evaluations", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, 1, "Ana", types.RoleStudent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var evaluations []types.Evaluation
	if err := json.Unmarshal(rec.Body.Bytes(), &evaluations); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(evaluations) != 1 || evaluations[0].Score != 9 {
		t.Fatalf("unexpected evaluations: %+v", evaluations)
	}
}

// Project reads stay public.
func TestGetProjectWithoutToken(t *testing.T) {
	router, _ := newProjectRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateEvaluationRequiresProfessor(t *testing.T) {
	router, tokens := newProjectRouter(t)

	payload, err := json.Marshal(map[string]any{"score": 7.5, "comment": "nice"})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/projects/1/evaluations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, tokens, 1, "Ana", types.RoleStudent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d: %s", rec.Code, rec.Body.String())
	}
}
