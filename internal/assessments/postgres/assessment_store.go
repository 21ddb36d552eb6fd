// Package postgres implements the assessments domain's persistence using
// PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/assessments"
	"github.com/schoolforge/schoolforge-api/internal/platform/logger"
	platformpg "github.com/schoolforge/schoolforge-api/internal/platform/postgres"
)

// AssessmentStore implements the assessments.Store interface using a
// PostgreSQL database as the storage backend.
type AssessmentStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAssessmentStore creates a new PostgreSQL implementation of the
// assessments.Store interface. It accepts a database connection that should
// be initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewAssessmentStore(db *sql.DB, log *slog.Logger) *AssessmentStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AssessmentStore{
		db:     db,
		logger: log.With(slog.String("component", "assessment_store")),
	}
}

// Ensure AssessmentStore implements assessments.Store interface
var _ assessments.Store = (*AssessmentStore)(nil)

// GetByID implements assessments.Store.GetByID
func (s *AssessmentStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*assessments.Assessment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, created_by, milestone_id, created_at, updated_at
		FROM assessments
		WHERE id = $1
	`

	var assessment assessments.Assessment
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&assessment.ID,
		&assessment.Title,
		&assessment.CreatedBy,
		&assessment.MilestoneID,
		&assessment.CreatedAt,
		&assessment.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to query assessment",
				slog.String("error", err.Error()),
				slog.String("assessment_id", id.String()))
		}
		return nil, platformpg.MapError(err, assessments.ErrAssessmentNotFound)
	}

	return &assessment, nil
}

// Update implements assessments.Store.Update
func (s *AssessmentStore) Update(
	ctx context.Context,
	assessment *assessments.Assessment,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := assessment.Validate(); err != nil {
		log.Warn("assessment validation failed during update",
			slog.String("error", err.Error()),
			slog.String("assessment_id", assessment.ID.String()))
		return err
	}

	query := `
		UPDATE assessments
		SET title = $2, milestone_id = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		assessment.ID,
		assessment.Title,
		assessment.MilestoneID,
		assessment.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update assessment",
			slog.String("error", err.Error()),
			slog.String("assessment_id", assessment.ID.String()))
		return platformpg.MapError(err, assessments.ErrAssessmentNotFound)
	}

	return platformpg.CheckRowsAffected(result, "assessment", assessments.ErrAssessmentNotFound)
}

// CreateSubmission implements assessments.Store.CreateSubmission
func (s *AssessmentStore) CreateSubmission(
	ctx context.Context,
	submission *assessments.Submission,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := submission.Validate(); err != nil {
		log.Warn("submission validation failed during create",
			slog.String("error", err.Error()),
			slog.String("submission_id", submission.ID.String()))
		return err
	}

	query := `
		INSERT INTO submissions (id, assessment_id, student_id, content, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.AssessmentID,
		submission.StudentID,
		submission.Content,
		submission.SubmittedAt,
	)
	if err != nil {
		if platformpg.IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during submission creation",
				slog.String("submission_id", submission.ID.String()),
				slog.String("assessment_id", submission.AssessmentID.String()))
			return assessments.ErrAssessmentNotFound
		}

		log.Error("failed to create submission",
			slog.String("error", err.Error()),
			slog.String("submission_id", submission.ID.String()))
		return platformpg.MapError(err, assessments.ErrAssessmentNotFound)
	}

	log.Info("submission recorded",
		slog.String("submission_id", submission.ID.String()),
		slog.String("assessment_id", submission.AssessmentID.String()),
		slog.String("student_id", submission.StudentID.String()))
	return nil
}
