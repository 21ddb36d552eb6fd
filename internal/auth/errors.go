package auth

import "errors"

// Common store errors used across auth store implementations.
var (
	// ErrUserNotFound is returned when a requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when creating or updating a user would
	// duplicate an email address that is already taken.
	ErrEmailExists = errors.New("email already exists")
)
