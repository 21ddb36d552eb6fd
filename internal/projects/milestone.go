package projects

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyMilestoneID        = errors.New("milestone ID cannot be empty")
	ErrEmptyMilestoneProjectID = errors.New("milestone project ID cannot be empty")
	ErrEmptyMilestoneName      = errors.New("milestone name cannot be empty")
)

// Milestone is a stage within a project. For authorization purposes it is
// purely a link in the ownership chain: it belongs to exactly one project.
type Milestone struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Name      string     `json:"name"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewMilestone creates a new Milestone within the given project.
func NewMilestone(projectID uuid.UUID, name string) (*Milestone, error) {
	milestone := &Milestone{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := milestone.Validate(); err != nil {
		return nil, err
	}

	return milestone, nil
}

// Validate checks if the Milestone has valid data.
func (m *Milestone) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMilestoneID
	}

	if m.ProjectID == uuid.Nil {
		return ErrEmptyMilestoneProjectID
	}

	if m.Name == "" {
		return ErrEmptyMilestoneName
	}

	return nil
}
