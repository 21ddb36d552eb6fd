package assessments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/projects"
)

// NewProjectGateway creates an adapter that implements the ProjectGateway
// port on top of the projects domain's public read surface. This adapter is
// the canonical facade crossing between the two domains; nothing else in this
// package touches the projects package.
func NewProjectGateway(reader projects.Reader) ProjectGateway {
	if reader == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reader cannot be nil")
	}
	return &projectGatewayAdapter{reader: reader}
}

// projectGatewayAdapter adapts a projects.Reader to the ProjectGateway port,
// translating the projects domain's records and sentinels into port-local ones.
type projectGatewayAdapter struct {
	reader projects.Reader
}

// GetMilestone implements ProjectGateway.GetMilestone
func (a *projectGatewayAdapter) GetMilestone(
	ctx context.Context,
	id uuid.UUID,
) (*MilestoneRef, error) {
	milestone, err := a.reader.GetMilestone(ctx, id)
	if err != nil {
		if errors.Is(err, projects.ErrMilestoneNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("project gateway: get milestone: %w", err)
	}

	return &MilestoneRef{
		ID:        milestone.ID,
		ProjectID: milestone.ProjectID,
	}, nil
}

// GetProject implements ProjectGateway.GetProject
func (a *projectGatewayAdapter) GetProject(
	ctx context.Context,
	id uuid.UUID,
) (*ProjectRef, error) {
	project, err := a.reader.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project gateway: get project: %w", err)
	}

	return &ProjectRef{
		ID:        project.ID,
		TeacherID: project.TeacherID,
		SchoolID:  project.SchoolID,
	}, nil
}

// GetStudentProjectIDs implements ProjectGateway.GetStudentProjectIDs.
// The underlying query's order is preserved and nothing is deduplicated: the
// projects domain already guarantees an association is recorded once.
func (a *projectGatewayAdapter) GetStudentProjectIDs(
	ctx context.Context,
	studentID uuid.UUID,
) ([]uuid.UUID, error) {
	list, err := a.reader.ListProjectsForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("project gateway: list student projects: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, project := range list {
		ids = append(ids, project.ID)
	}
	return ids, nil
}
