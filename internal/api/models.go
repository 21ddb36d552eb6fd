package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/assessments"
)

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the token refresh request payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents the response to successful authentication,
// containing both access and refresh tokens.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AssessmentResponse represents an assessment returned by the API.
type AssessmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	MilestoneID *uuid.UUID `json:"milestone_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewAssessmentResponse converts a domain assessment to its API representation.
func NewAssessmentResponse(a *assessments.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:          a.ID,
		Title:       a.Title,
		CreatedBy:   a.CreatedBy,
		MilestoneID: a.MilestoneID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// UpdateAssessmentRequest represents the payload for modifying an assessment.
type UpdateAssessmentRequest struct {
	Title       string     `json:"title"                  validate:"required,max=200"`
	MilestoneID *uuid.UUID `json:"milestone_id,omitempty"`
}

// CreateSubmissionRequest represents a student's submission payload.
// Content is stored as-is; its shape is owned by the assessment author.
type CreateSubmissionRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
}

// SubmissionResponse represents a recorded submission returned by the API.
type SubmissionResponse struct {
	ID           uuid.UUID `json:"id"`
	AssessmentID uuid.UUID `json:"assessment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
