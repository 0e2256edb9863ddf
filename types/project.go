package types

import "time"

// Project is an extension project submitted by a group to a showcase event.
type Project struct {
	ID          int    `json:"id" db:"id"`
	GroupID     int    `json:"group_id" db:"group_id"`
	EventID     int    `json:"event_id,omitempty" db:"event_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	// GroupName is denormalized from the owning group on reads.
	GroupName string `json:"group_name,omitempty"`

	// AverageScore is the mean of all evaluation scores, nil when the
	// project has not been evaluated yet. Populated on single fetches.
	AverageScore *float64 `json:"average_score,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
