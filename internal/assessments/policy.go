package assessments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/auth"
)

// The resolvers below are pure decision functions: no side effects, no
// mutation, deterministic for a given assessment and gateway state. A gateway
// "not found" is treated as evidence against ownership (fail-closed), never
// as an error; genuine gateway failures propagate so that "don't know" is
// never conflated with "doesn't exist".

// CanTeacherManageAssessment reports whether the teacher with the given id
// owns the assessment, either directly (CreatedBy) or through the
// milestone→project chain resolved via the gateway.
func CanTeacherManageAssessment(
	ctx context.Context,
	gateway ProjectGateway,
	assessment *Assessment,
	teacherID uuid.UUID,
) (bool, error) {
	// Direct ownership short-circuits without any gateway calls. This is
	// also the only path available for standalone assessments.
	if assessment.CreatedBy != nil && *assessment.CreatedBy == teacherID {
		return true, nil
	}

	if assessment.MilestoneID == nil {
		return false, nil
	}

	milestone, err := gateway.GetMilestone(ctx, *assessment.MilestoneID)
	if err != nil {
		if errors.Is(err, ErrMilestoneNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve milestone: %w", err)
	}

	project, err := gateway.GetProject(ctx, milestone.ProjectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve project: %w", err)
	}

	return project.TeacherID == teacherID, nil
}

// CanUserAccessAssessment reports whether the user may access the assessment
// at all. It dispatches on the (role, tier) combination; every combination
// has a defined outcome, and anything unrecognized is denied.
//
// Enterprise-tier admins see everything. Free-tier admins are held to the
// same ownership discipline as teachers: tier, not role, is what grants the
// organization-wide bypass.
func CanUserAccessAssessment(
	ctx context.Context,
	gateway ProjectGateway,
	assessment *Assessment,
	user *auth.User,
) (bool, error) {
	switch user.Role {
	case auth.RoleAdmin:
		switch user.Tier {
		case auth.TierEnterprise:
			return true, nil
		case auth.TierFree:
			return CanTeacherManageAssessment(ctx, gateway, assessment, user.ID)
		}
		return false, nil

	case auth.RoleTeacher:
		return CanTeacherManageAssessment(ctx, gateway, assessment, user.ID)

	case auth.RoleStudent:
		return canStudentAccessAssessment(ctx, gateway, assessment, user.ID)
	}

	return false, nil
}

// canStudentAccessAssessment grants a student access when the assessment's
// milestone resolves to a project the student belongs to. The milestone is
// looked up rather than trusted, so a dangling milestone id denies access.
// Standalone assessments are denied: share-code distribution is handled
// before the policy layer is consulted.
func canStudentAccessAssessment(
	ctx context.Context,
	gateway ProjectGateway,
	assessment *Assessment,
	studentID uuid.UUID,
) (bool, error) {
	if assessment.MilestoneID == nil {
		return false, nil
	}

	milestone, err := gateway.GetMilestone(ctx, *assessment.MilestoneID)
	if err != nil {
		if errors.Is(err, ErrMilestoneNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve milestone: %w", err)
	}

	projectIDs, err := gateway.GetStudentProjectIDs(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to list student projects: %w", err)
	}

	for _, id := range projectIDs {
		if id == milestone.ProjectID {
			return true, nil
		}
	}

	return false, nil
}
