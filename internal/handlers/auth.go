package handlers

import (
	"errors"
	"net/http"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/metrics"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides the authentication endpoints: registration,
// login, token refresh, and the caller's own profile.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	tokens      *auth.TokenManager
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, tokens: tokens}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, userService *services.UserService, tokens *auth.TokenManager) {
	handler := NewAuthHandler(authService, userService, tokens)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/refresh", handler.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Post("/logout", handler.Logout)
		r.Get("/me", handler.Me)
		r.Put("/me", handler.UpdateMe)
	})
}

type RegisterRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=120"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=6,max=72"`
	Role         string   `json:"role" validate:"required"`
	Course       string   `json:"course,omitempty"`
	Registration string   `json:"registration,omitempty"`
	Semester     string   `json:"semester,omitempty"`
	Classes      []string `json:"classes,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

// Register creates a new account. The response carries the new id only;
// clients log in separately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), services.RegisterParams{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Course:       req.Course,
		Registration: req.Registration,
		Semester:     req.Semester,
		Classes:      req.Classes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			writeError(w, http.StatusBadRequest, "invalid role")
		case errors.Is(err, store.ErrDuplicate):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			writeError(w, http.StatusConflict, "email already registered")
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusCreated, RegisterResponse{Message: "user created", ID: user.ID})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refresh_token"`
	User         types.PublicUser `json:"user"`
}

// Login verifies credentials and returns an access/refresh token pair.
// Unknown email and wrong password produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pair, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user.PublicView(),
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh exchanges a valid refresh token for a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			writeError(w, http.StatusUnauthorized, "token expired")
		case errors.Is(err, auth.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "invalid token")
		default:
			writeError(w, http.StatusInternalServerError, "failed to refresh token")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout acknowledges the client's intent to discard its tokens. Tokens
// are stateless, so there is no server-side state to clear; they remain
// technically valid until expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated caller's full profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=120"`
	Course       string   `json:"course,omitempty"`
	Registration string   `json:"registration,omitempty"`
	Semester     string   `json:"semester,omitempty"`
	Classes      []string `json:"classes,omitempty"`
}

// UpdateMe updates the caller's profile fields. Email, role, and
// password are not editable here.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	user.Name = req.Name
	user.Course = req.Course
	user.Registration = req.Registration
	user.Semester = req.Semester
	user.Classes = req.Classes

	updated, err := h.userService.UpdateProfile(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
