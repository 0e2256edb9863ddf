package auth

import "errors"

// Authentication failures are kept distinct so the HTTP layer can map them
// to precise responses. Invalid credentials deliberately covers both
// unknown users and wrong passwords, so responses never reveal which one
// occurred.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
