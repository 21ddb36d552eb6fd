// Package postgres implements the projects domain's read surface using
// PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/platform/logger"
	platformpg "github.com/schoolforge/schoolforge-api/internal/platform/postgres"
	"github.com/schoolforge/schoolforge-api/internal/projects"
)

// Store implements the projects.Reader interface using a PostgreSQL database
// as the storage backend.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a new PostgreSQL implementation of the projects.Reader
// interface. It accepts a database connection that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewStore(db *sql.DB, log *slog.Logger) *Store {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		db:     db,
		logger: log.With(slog.String("component", "project_store")),
	}
}

// Ensure Store implements projects.Reader interface
var _ projects.Reader = (*Store)(nil)

// GetProject implements projects.Reader.GetProject
func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, teacher_id, school_id, name, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project projects.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.TeacherID,
		&project.SchoolID,
		&project.Name,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to query project",
				slog.String("error", err.Error()),
				slog.String("project_id", id.String()))
		}
		return nil, platformpg.MapError(err, projects.ErrProjectNotFound)
	}

	return &project, nil
}

// GetMilestone implements projects.Reader.GetMilestone
func (s *Store) GetMilestone(ctx context.Context, id uuid.UUID) (*projects.Milestone, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, project_id, name, due_at, created_at, updated_at
		FROM milestones
		WHERE id = $1
	`

	var milestone projects.Milestone
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&milestone.ID,
		&milestone.ProjectID,
		&milestone.Name,
		&milestone.DueAt,
		&milestone.CreatedAt,
		&milestone.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to query milestone",
				slog.String("error", err.Error()),
				slog.String("milestone_id", id.String()))
		}
		return nil, platformpg.MapError(err, projects.ErrMilestoneNotFound)
	}

	return &milestone, nil
}

// ListProjectsForStudent implements projects.Reader.ListProjectsForStudent.
// Directly assigned projects come first, then projects reached through team
// membership, each group ordered by assignment time. Duplicates are not
// collapsed here; the schema's uniqueness constraints already prevent the
// same association being recorded twice.
func (s *Store) ListProjectsForStudent(
	ctx context.Context,
	studentID uuid.UUID,
) ([]*projects.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT p.id, p.teacher_id, p.school_id, p.name, p.created_at, p.updated_at
		FROM (
			SELECT ps.project_id, 0 AS source, ps.assigned_at AS ordered_at
			FROM project_students ps
			WHERE ps.student_id = $1
			UNION ALL
			SELECT t.project_id, 1 AS source, tm.joined_at AS ordered_at
			FROM team_members tm
			JOIN teams t ON t.id = tm.team_id
			WHERE tm.student_id = $1
		) memberships
		JOIN projects p ON p.id = memberships.project_id
		ORDER BY memberships.source, memberships.ordered_at
	`

	rows, err := s.db.QueryContext(ctx, query, studentID)
	if err != nil {
		log.Error("failed to query student projects",
			slog.String("error", err.Error()),
			slog.String("student_id", studentID.String()))
		return nil, fmt.Errorf("failed to query student projects: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var result []*projects.Project
	for rows.Next() {
		var project projects.Project
		if err := rows.Scan(
			&project.ID,
			&project.TeacherID,
			&project.SchoolID,
			&project.Name,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		result = append(result, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}

	if result == nil {
		result = []*projects.Project{}
	}
	return result, nil
}
