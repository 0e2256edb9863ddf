package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/services"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// memoryUserRepo is guarded by a mutex because the last-login stamp
// runs on a background goroutine.
type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[int]types.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int]types.User), nextID: 1}
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == strings.ToLower(email) {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) UpdateProfile(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) UpdateRole(_ context.Context, id int, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Role = role
	r.users[id] = user
	return nil
}

func (r *memoryUserRepo) TouchLastLogin(_ context.Context, id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.LastLoginAt = &at
	r.users[id] = user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newAuthRouter(t *testing.T) (chi.Router, *memoryUserRepo) {
	t.Helper()
	repo := newMemoryUserRepo()
	tokens, err := auth.NewTokenManager("handler-test-secret", time.Hour, 2*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	authService := services.NewAuthService(repo, tokens, zerolog.Nop())
	userService := services.NewUserService(repo, nil)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		AuthRouter(r, authService, userService, tokens)
	})
	return r, repo
}

func postJSON(t *testing.T, router http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAna(t *testing.T, router http.Handler) {
	t.Helper()
	rec := postJSON(t, router, "/auth/register", map[string]any{
		"name":     "Ana Souza",
		"email":    "ana@example.edu",
		"password": "hunter22",
		"role":     "student",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", map[string]any{
		"name":     "Ana Souza",
		"email":    "ana@example.edu",
		"password": "hunter22",
		"role":     "student",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if strings.Contains(rec.Body.String(), "hunter22") {
		t.Fatal("password leaked in response")
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"name": "Ana", "password": "hunter22", "role": "student"}},
		{"bad email", map[string]any{"name": "Ana", "email": "nope", "password": "hunter22", "role": "student"}},
		{"short password", map[string]any{"name": "Ana", "email": "a@b.edu", "password": "abc", "role": "student"}},
		{"classes not an array", map[string]any{"name": "Ana", "email": "a@b.edu", "password": "hunter22", "role": "professor", "classes": "algorithms"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, "/auth/register", tc.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterEndpointUnknownRole(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", map[string]any{
		"name": "Ana", "email": "ana@example.edu", "password": "hunter22", "role": "root",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	rec := postJSON(t, router, "/auth/register", map[string]any{
		"name": "Other Ana", "email": "ANA@example.edu", "password": "different", "role": "student",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	rec := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "hunter22",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if resp.User.Email != "ana@example.edu" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password_hash") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatal("credential hash leaked in response")
	}
}

// Wrong password and unknown email must yield byte-identical failures.
func TestLoginEndpointUniformFailure(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	wrongPass := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "wrong-password",
	}, nil)
	unknown := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ghost@example.edu", "password": "hunter22",
	}, nil)

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestRefreshEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	login := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "hunter22",
	}, nil)
	var loginResp LoginResponse
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	rec := postJSON(t, router, "/auth/refresh", map[string]any{
		"refresh_token": loginResp.RefreshToken,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["token"] == "" {
		t.Fatal("expected fresh access token")
	}
}

func TestRefreshEndpointRejectsAccessToken(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	login := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "hunter22",
	}, nil)
	var loginResp LoginResponse
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	rec := postJSON(t, router, "/auth/refresh", map[string]any{
		"refresh_token": loginResp.Token,
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	login := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "hunter22",
	}, nil)
	var loginResp LoginResponse
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var user types.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Email != "ana@example.edu" {
		t.Fatalf("unexpected user %+v", user)
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatal("credential hash leaked in response")
	}
}

func TestMeEndpointWithoutToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)
	registerAna(t, router)

	login := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "hunter22",
	}, nil)
	var loginResp LoginResponse
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	rec := postJSON(t, router, "/auth/logout", map[string]any{}, map[string]string{
		"Authorization": "Bearer " + loginResp.Token,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Stateless tokens stay valid after logout; the client discards them.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	after := httptest.NewRecorder()
	router.ServeHTTP(after, req)
	if after.Code != http.StatusOK {
		t.Fatalf("expected 200 after logout, got %d", after.Code)
	}
}

func TestUpdateMeEndpoint(t *testing.T) {
	router, repo := newAuthRouter(t)
	registerAna(t, router)

	login := postJSON(t, router, "/auth/login", map[string]any{
		"email": "ana@example.edu", "password": "hunter22",
	}, nil)
	var loginResp LoginResponse
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"name":     "Ana S. Souza",
		"course":   "Computer Engineering",
		"semester": "2026.2",
	})
	req := httptest.NewRequest(http.MethodPut, "/auth/me", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stored, err := repo.GetByID(context.Background(), loginResp.User.ID)
	if err != nil {
		t.Fatalf("load updated user: %v", err)
	}
	if stored.Name != "Ana S. Souza" || stored.Course != "Computer Engineering" {
		t.Fatalf("profile not updated: %+v", stored)
	}
}
