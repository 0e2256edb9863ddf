package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/go-chi/chi/v5"
)

const defaultPageSize = 20
const maxPageSize = 100

// ProjectHandler provides project and evaluation endpoints.
type ProjectHandler struct {
	projectService    *services.ProjectService
	evaluationService *services.EvaluationService
}

func NewProjectHandler(projectService *services.ProjectService, evaluationService *services.EvaluationService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, evaluationService: evaluationService}
}

// ProjectRouter registers project routes. Project reads are public;
// evaluation listing requires authentication, writes are for students
// in the owning group, and scoring is for professors.
func ProjectRouter(r chi.Router, projectService *services.ProjectService, evaluationService *services.EvaluationService, tokens *auth.TokenManager) {
	handler := NewProjectHandler(projectService, evaluationService)

	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/{id}/evaluations", handler.ListEvaluations)
		r.With(auth.RequireRole(types.RoleStudent)).Post("/", handler.Create)
		r.With(auth.RequireRole(types.RoleStudent)).Put("/{id}", handler.Update)
		r.With(auth.RequireRole(types.RoleProfessor)).Post("/{id}/evaluations", handler.CreateEvaluation)
	})
}

// ProjectListResponse is the paginated project listing envelope.
type ProjectListResponse struct {
	Projects []types.Project `json:"projects"`
	Total    int             `json:"total"`
	Offset   int             `json:"offset"`
	Limit    int             `json:"limit"`
}

// List returns projects, paginated via offset/limit query parameters.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	projects, total, err := h.projectService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	writeJSON(w, http.StatusOK, ProjectListResponse{
		Projects: projects,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// Get returns a project with its average evaluation score.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type ProjectRequest struct {
	GroupID     int    `json:"group_id" validate:"required,min=1"`
	EventID     int    `json:"event_id"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description"`
}

// Create submits a project on behalf of the caller's group.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.Create(r.Context(), types.Project{
		GroupID:     req.GroupID,
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
	}, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotGroupMember) {
			writeError(w, http.StatusForbidden, "not a member of the group")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

type UpdateProjectRequest struct {
	EventID     int    `json:"event_id"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description"`
}

// Update edits a project. Only members of the owning group may edit.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.Update(r.Context(), types.Project{
		ID:          id,
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "project not found")
		case errors.Is(err, services.ErrNotGroupMember):
			writeError(w, http.StatusForbidden, "not a member of the group")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update project")
		}
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// ListEvaluations returns the evaluations recorded for a project.
func (h *ProjectHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluations, err := h.evaluationService.ListByProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list evaluations")
		return
	}
	writeJSON(w, http.StatusOK, evaluations)
}

type EvaluationRequest struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// CreateEvaluation records the calling professor's score for a project.
// The professor id comes from the verified token, never the payload.
func (h *ProjectHandler) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	professorID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req EvaluationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation, err := h.evaluationService.Create(r.Context(), types.Evaluation{
		ProjectID:   id,
		ProfessorID: professorID,
		Score:       req.Score,
		Comment:     req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidScore):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "project not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create evaluation")
		}
		return
	}

	writeJSON(w, http.StatusCreated, evaluation)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
