package api

import (
	"errors"
	"net/http"

	"github.com/schoolforge/schoolforge-api/internal/assessments"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/schoolforge/schoolforge-api/internal/auth/token"
	"github.com/schoolforge/schoolforge-api/internal/platform/postgres"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrExpiredToken),
		errors.Is(err, token.ErrTokenNotYetValid),
		errors.Is(err, token.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, assessments.ErrAssessmentNotFound),
		errors.Is(err, assessments.ErrMilestoneNotFound),
		errors.Is(err, assessments.ErrProjectNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, postgres.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, token.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, token.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, assessments.ErrAssessmentNotFound):
		return "Assessment not found"

	case errors.Is(err, assessments.ErrMilestoneNotFound):
		return "Milestone not found"

	case errors.Is(err, assessments.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, auth.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, postgres.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
