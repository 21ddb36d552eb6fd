package assessments

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Gateway lookup errors. These are deliberately distinct from any projects
// domain sentinel: the port carries its own absence signal so the policy
// layer never imports another domain's error taxonomy. An absence is a
// definite, legitimate outcome; adapters must never use these sentinels for
// infrastructure failures, which propagate as ordinary errors.
var (
	// ErrMilestoneNotFound is returned by GetMilestone when no milestone has
	// the given id.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrProjectNotFound is returned by GetProject when no project has the
	// given id.
	ErrProjectNotFound = errors.New("project not found")
)

// MilestoneRef is the port-local view of a milestone: just enough to follow
// the ownership chain one hop.
type MilestoneRef struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
}

// ProjectRef is the port-local view of a project: just enough to decide
// ownership and school scoping.
type ProjectRef struct {
	ID        uuid.UUID
	TeacherID uuid.UUID
	SchoolID  *uuid.UUID
}

// ProjectGateway is the only sanctioned channel through which the assessments
// domain reads from the projects domain. It exposes exactly the three lookups
// the authorization policy needs; all of them are read-only and safe to call
// repeatedly.
type ProjectGateway interface {
	// GetMilestone fetches a milestone by id.
	// Returns ErrMilestoneNotFound if no such milestone exists.
	GetMilestone(ctx context.Context, id uuid.UUID) (*MilestoneRef, error)

	// GetProject fetches a project by id.
	// Returns ErrProjectNotFound if no such project exists.
	GetProject(ctx context.Context, id uuid.UUID) (*ProjectRef, error)

	// GetStudentProjectIDs returns the ids of every project the student is
	// associated with, in the order the projects domain reports them.
	GetStudentProjectIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}
