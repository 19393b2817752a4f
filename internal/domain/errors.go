package domain

import "errors"

// Sentinel errors shared across repositories and services. Callers
// distinguish error kinds with errors.Is instead of string matching.
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSeatUnavailable    = errors.New("one or more seats are not available")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
