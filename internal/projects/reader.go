package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Store errors surfaced by Reader implementations.
var (
	// ErrProjectNotFound is returned when a requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrMilestoneNotFound is returned when a requested milestone does not exist.
	ErrMilestoneNotFound = errors.New("milestone not found")
)

// Reader is the read-only surface of the projects domain. Every method is a
// pure lookup: no call mutates anything, and a miss is reported through the
// package's not-found sentinels rather than an empty value.
type Reader interface {
	// GetProject retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)

	// GetMilestone retrieves a milestone by its unique ID.
	// Returns ErrMilestoneNotFound if the milestone does not exist.
	GetMilestone(ctx context.Context, id uuid.UUID) (*Milestone, error)

	// ListProjectsForStudent returns every project the student is associated
	// with, through direct assignment or through membership of a project
	// team, in the order the underlying query yields them. A student with no
	// associations gets an empty slice, not an error.
	ListProjectsForStudent(ctx context.Context, studentID uuid.UUID) ([]*Project, error)
}
