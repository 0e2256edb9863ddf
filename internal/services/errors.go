package services

import "errors"

// Domain validation failures surfaced to the HTTP layer.
var (
	// ErrInvalidRole rejects registrations and role changes outside the
	// closed role set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidScore rejects evaluation scores outside [0, 10].
	ErrInvalidScore = errors.New("score must be between 0 and 10")

	// ErrNotGroupMember rejects project writes by users outside the
	// owning group.
	ErrNotGroupMember = errors.New("user is not a member of the group")

	// ErrInvalidEventWindow rejects events that end before they start.
	ErrInvalidEventWindow = errors.New("event must end after it starts")
)
