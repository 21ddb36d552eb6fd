// Package assessments is the public facade of the assessments domain. It owns
// the Assessment record and the authorization policy deciding which users may
// view, manage, or submit against an assessment. The policy resolves project
// ownership exclusively through the ProjectGateway port so that this domain
// never depends on the projects domain's internals.
package assessments

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyAssessmentID = errors.New("assessment ID cannot be empty")
	ErrEmptyTitle        = errors.New("assessment title cannot be empty")
)

// Assessment is an evaluable piece of work. Its ownership is either direct
// (CreatedBy records the authoring teacher) or implicit through the
// milestone→project chain. An assessment with neither is standalone,
// typically distributed through a share code outside any project structure.
type Assessment struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	MilestoneID *uuid.UUID      `json:"milestone_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewAssessment creates a new Assessment with the given title. Ownership
// links are optional and set by the caller afterwards.
func NewAssessment(title string) (*Assessment, error) {
	assessment := &Assessment{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := assessment.Validate(); err != nil {
		return nil, err
	}

	return assessment, nil
}

// Validate checks if the Assessment has valid data.
func (a *Assessment) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAssessmentID
	}

	if a.Title == "" {
		return ErrEmptyTitle
	}

	return nil
}

// Standalone reports whether the assessment is linked to neither a creating
// teacher nor a milestone.
func (a *Assessment) Standalone() bool {
	return a.CreatedBy == nil && a.MilestoneID == nil
}
