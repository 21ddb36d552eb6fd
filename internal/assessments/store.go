package assessments

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for assessment data persistence.
type Store interface {
	// GetByID retrieves an assessment by its unique ID.
	// Returns ErrAssessmentNotFound if the assessment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)

	// Update modifies an existing assessment's mutable fields (title,
	// milestone link). Returns ErrAssessmentNotFound if the assessment does
	// not exist.
	Update(ctx context.Context, assessment *Assessment) error

	// CreateSubmission records a student's submission against an assessment.
	// Returns validation errors from the Submission if data is invalid.
	CreateSubmission(ctx context.Context, submission *Submission) error
}
