package types

import "time"

// Roles form a closed set. Anything else is rejected at registration.
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's unique email address. Uniqueness is
	// case-insensitive.
	Email string `json:"email" db:"email"`

	// Role is one of RoleStudent, RoleProfessor, RoleAdmin.
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Role-specific profile attributes. Course, Registration and Semester
	// apply to students; Classes lists the classes a professor teaches.
	// The auth layer carries them opaquely.
	Course       string   `json:"course,omitempty" db:"course"`
	Registration string   `json:"registration,omitempty" db:"registration"`
	Semester     string   `json:"semester,omitempty" db:"semester"`
	Classes      []string `json:"classes,omitempty" db:"classes"`

	// LastLoginAt records the most recent successful authentication.
	// Updated best-effort; nil until the first login.
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PublicView returns the redacted representation used in auth responses:
// identity fields only, never the credential hash.
func (u User) PublicView() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// PublicUser is the redacted user payload returned by login and profile
// endpoints.
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
