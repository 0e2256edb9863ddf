package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JhonW67/ProjectHub/internal/auth"
	"github.com/JhonW67/ProjectHub/internal/store"
	"github.com/JhonW67/ProjectHub/types"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const lastLoginTimeout = 5 * time.Second

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateProfile(ctx context.Context, user types.User) (types.User, error)
	UpdateRole(ctx context.Context, id int, role string) error
	TouchLastLogin(ctx context.Context, id int, at time.Time) error
	Delete(ctx context.Context, id int) error
}

// AuthService implements credential issuance: registration, login, and
// refresh-token exchange.
type AuthService struct {
	users  UserRepository
	tokens *auth.TokenManager
	log    zerolog.Logger
}

func NewAuthService(users UserRepository, tokens *auth.TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// RegisterParams carries a registration request. Role-specific fields are
// stored opaquely.
type RegisterParams struct {
	Name         string
	Email        string
	Password     string
	Role         string
	Course       string
	Registration string
	Semester     string
	Classes      []string
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a user with a bcrypt-hashed credential. The raw
// password is never persisted or logged. Emails are normalized to lower
// case; a duplicate yields store.ErrDuplicate.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (types.User, error) {
	if !types.ValidRole(p.Role) {
		return types.User{}, ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := types.User{
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		Role:         p.Role,
		PasswordHash: string(hashed),
		Course:       strings.TrimSpace(p.Course),
		Registration: strings.TrimSpace(p.Registration),
		Semester:     strings.TrimSpace(p.Semester),
		Classes:      p.Classes,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return types.User{}, err
	}
	return created, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// An unknown email and a wrong password both return
// auth.ErrInvalidCredentials so responses cannot be used for user
// enumeration. The last-login timestamp is recorded best-effort, off the
// request path.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, types.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return TokenPair{}, types.User{}, auth.ErrInvalidCredentials
		}
		return TokenPair{}, types.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, types.User{}, auth.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return TokenPair{}, types.User{}, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return TokenPair{}, types.User{}, fmt.Errorf("issue refresh token: %w", err)
	}

	go s.touchLastLogin(user.ID)

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// user record is re-read so role changes take effect on the next access
// token rather than lingering until refresh expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	id, err := claims.UserID()
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", auth.ErrInvalidToken
		}
		return "", err
	}

	return s.tokens.IssueAccess(user)
}

func (s *AuthService) touchLastLogin(userID int) {
	ctx, cancel := context.WithTimeout(context.Background(), lastLoginTimeout)
	defer cancel()
	if err := s.users.TouchLastLogin(ctx, userID, time.Now()); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("failed to record last login")
	}
}
