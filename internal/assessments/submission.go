package assessments

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptySubmissionID      = errors.New("submission ID cannot be empty")
	ErrEmptySubmissionStudent = errors.New("submission student ID cannot be empty")
	ErrEmptySubmissionContent = errors.New("submission content cannot be empty")
)

// Submission is a student's answer to an assessment. The content is opaque to
// this domain; grading happens elsewhere.
type Submission struct {
	ID           uuid.UUID       `json:"id"`
	AssessmentID uuid.UUID       `json:"assessment_id"`
	StudentID    uuid.UUID       `json:"student_id"`
	Content      json.RawMessage `json:"content"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// NewSubmission creates a new Submission for the given assessment and student.
func NewSubmission(
	assessmentID, studentID uuid.UUID,
	content json.RawMessage,
) (*Submission, error) {
	submission := &Submission{
		ID:           uuid.New(),
		AssessmentID: assessmentID,
		StudentID:    studentID,
		Content:      content,
		SubmittedAt:  time.Now().UTC(),
	}

	if err := submission.Validate(); err != nil {
		return nil, err
	}

	return submission, nil
}

// Validate checks if the Submission has valid data.
func (s *Submission) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySubmissionID
	}

	if s.AssessmentID == uuid.Nil {
		return ErrEmptyAssessmentID
	}

	if s.StudentID == uuid.Nil {
		return ErrEmptySubmissionStudent
	}

	if len(s.Content) == 0 || !json.Valid(s.Content) {
		return ErrEmptySubmissionContent
	}

	return nil
}
