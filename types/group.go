package types

import "time"

// Group is a student group that owns projects. Students join via the
// group's invite code. A student belongs to at most one group.
type Group struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`

	// Code is the short invite code students use to join.
	Code string `json:"code" db:"code"`

	// Members holds the user ids of current members. Populated on
	// single-group fetches, empty in list responses.
	Members []int `json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
