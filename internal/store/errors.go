package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// e.g. an already-registered email or a double group join.
var ErrDuplicate = errors.New("already exists")

const pgUniqueViolation = "23505"

// mapConstraintError converts Postgres unique violations into ErrDuplicate
// and passes every other error through.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
