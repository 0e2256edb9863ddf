package handlers

import (
	"errors"
	"net/http"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/go-chi/chi/v5"
)

// GroupHandler provides student group endpoints.
type GroupHandler struct {
	groupService   *services.GroupService
	projectService *services.ProjectService
}

func NewGroupHandler(groupService *services.GroupService, projectService *services.ProjectService) *GroupHandler {
	return &GroupHandler{groupService: groupService, projectService: projectService}
}

// GroupRouter registers group routes. All routes require authentication;
// creating and joining are for students.
func GroupRouter(r chi.Router, groupService *services.GroupService, projectService *services.ProjectService, tokens *auth.TokenManager) {
	handler := NewGroupHandler(groupService, projectService)

	r.Use(auth.RequireAuth(tokens))
	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)
	r.Get("/{id}/projects", handler.ListProjects)
	r.With(auth.RequireRole(types.RoleStudent)).Post("/", handler.Create)
	r.With(auth.RequireRole(types.RoleStudent)).Post("/join", handler.Join)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list groups")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groupService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load group")
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// ListProjects returns the projects owned by a group.
func (h *GroupHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.groupService.Get(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load group")
		return
	}

	projects, err := h.projectService.ListByGroup(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description"`
}

// Create makes a new group with the caller as founding member.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groupService.Create(r.Context(), req.Name, req.Description, userID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "user already belongs to a group")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

type JoinGroupRequest struct {
	Code string `json:"code" validate:"required"`
}

// Join enrolls the caller in the group matching the invite code.
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
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

	var req JoinGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groupService.Join(r.Context(), req.Code, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "invalid invite code")
		case errors.Is(err, store.ErrDuplicate):
			writeError(w, http.StatusConflict, "user already belongs to a group")
		default:
			writeError(w, http.StatusInternalServerError, "failed to join group")
		}
		return
	}

	writeJSON(w, http.StatusOK, group)
}
