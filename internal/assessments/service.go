package assessments

import (
	"context"
	"log/slog"

	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/schoolforge/schoolforge-api/internal/platform/logger"
)

// AccessService is the entry point HTTP handlers use for authorization
// decisions. It layers logging and decision metrics over the pure policy
// functions; the decision logic itself lives in policy.go.
type AccessService interface {
	// CanAccess reports whether the user may view the assessment or submit
	// against it.
	CanAccess(ctx context.Context, assessment *Assessment, user *auth.User) (bool, error)

	// CanManage reports whether the user may modify the assessment.
	// Enterprise-tier admins may manage anything; everyone else must satisfy
	// the ownership chain, and students never manage.
	CanManage(ctx context.Context, assessment *Assessment, user *auth.User) (bool, error)
}

// accessServiceImpl implements the AccessService interface
type accessServiceImpl struct {
	gateway ProjectGateway
	logger  *slog.Logger
	metrics *Metrics
}

// NewAccessService creates a new AccessService. metrics may be nil, in which
// case decisions are not counted.
func NewAccessService(
	gateway ProjectGateway,
	log *slog.Logger,
	metrics *Metrics,
) (AccessService, error) {
	if gateway == nil {
		return nil, ErrNilGateway
	}
	if log == nil {
		log = slog.Default()
	}

	return &accessServiceImpl{
		gateway: gateway,
		logger:  log.With(slog.String("component", "access_service")),
		metrics: metrics,
	}, nil
}

// CanAccess implements AccessService.CanAccess
func (s *accessServiceImpl) CanAccess(
	ctx context.Context,
	assessment *Assessment,
	user *auth.User,
) (bool, error) {
	allowed, err := CanUserAccessAssessment(ctx, s.gateway, assessment, user)
	s.observe(ctx, "access", assessment, user, allowed, err)
	return allowed, err
}

// CanManage implements AccessService.CanManage
func (s *accessServiceImpl) CanManage(
	ctx context.Context,
	assessment *Assessment,
	user *auth.User,
) (bool, error) {
	allowed, err := s.canManage(ctx, assessment, user)
	s.observe(ctx, "manage", assessment, user, allowed, err)
	return allowed, err
}

// canManage applies the manage rules: students never manage, the enterprise
// tier bypasses ownership for admins, everyone else resolves ownership.
func (s *accessServiceImpl) canManage(
	ctx context.Context,
	assessment *Assessment,
	user *auth.User,
) (bool, error) {
	switch user.Role {
	case auth.RoleStudent:
		return false, nil
	case auth.RoleAdmin:
		if user.Tier == auth.TierEnterprise {
			return true, nil
		}
	case auth.RoleTeacher:
		// Falls through to ownership resolution below.
	default:
		return false, nil
	}

	return CanTeacherManageAssessment(ctx, s.gateway, assessment, user.ID)
}

// observe logs and counts one decision.
func (s *accessServiceImpl) observe(
	ctx context.Context,
	operation string,
	assessment *Assessment,
	user *auth.User,
	allowed bool,
	err error,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	outcome := outcomeDeny
	switch {
	case err != nil:
		outcome = outcomeError
	case allowed:
		outcome = outcomeAllow
	}

	s.metrics.record(operation, string(user.Role), outcome)

	if err != nil {
		log.Error("authorization decision failed",
			slog.String("operation", operation),
			slog.String("assessment_id", assessment.ID.String()),
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	log.Debug("authorization decision",
		slog.String("operation", operation),
		slog.String("assessment_id", assessment.ID.String()),
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
		slog.String("tier", string(user.Tier)),
		slog.Bool("allowed", allowed))
}
