package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/go-chi/chi/v5"
)

// EventHandler provides showcase event endpoints. Reads are public,
// writes are admin-only.
type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRouter registers event routes.
func EventRouter(r chi.Router, eventService *services.EventService, tokens *auth.TokenManager) {
	handler := NewEventHandler(eventService)

	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Use(auth.RequireRole(types.RoleAdmin))
		r.Post("/", handler.Create)
		r.Put("/{id}", handler.Update)
	})
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type EventRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description"`
	Semester    string    `json:"semester" validate:"required"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Create(r.Context(), types.Event{
		Name:        req.Name,
		Description: req.Description,
		Semester:    req.Semester,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidEventWindow) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req EventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.Update(r.Context(), types.Event{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Semester:    req.Semester,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEventWindow):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update event")
		}
		return
	}

	writeJSON(w, http.StatusOK, event)
}
