package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/schoolforge/schoolforge-api/internal/api/shared"
	"github.com/schoolforge/schoolforge-api/internal/assessments"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/schoolforge/schoolforge-api/internal/platform/logger"
	"github.com/schoolforge/schoolforge-api/internal/redact"
)

// AssessmentHandler handles assessment-related HTTP requests. Every operation
// resolves the authenticated user, loads the assessment, and asks the access
// service before touching anything.
type AssessmentHandler struct {
	assessmentStore assessments.Store
	userReader      auth.UserReader
	accessService   assessments.AccessService
}

// NewAssessmentHandler creates a new AssessmentHandler with the given dependencies.
func NewAssessmentHandler(
	assessmentStore assessments.Store,
	userReader auth.UserReader,
	accessService assessments.AccessService,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentStore: assessmentStore,
		userReader:      userReader,
		accessService:   accessService,
	}
}

// GetAssessment handles GET /api/assessments/{id}.
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	user, assessment, ok := h.resolveUserAndAssessment(w, r)
	if !ok {
		return
	}

	allowed, err := h.accessService.CanAccess(r.Context(), assessment, user)
	if err != nil {
		h.respondPolicyError(w, r, err)
		return
	}
	if !allowed {
		shared.RespondWithError(w, r, http.StatusForbidden, "You do not have access to this assessment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAssessmentResponse(assessment))
}

// UpdateAssessment handles PUT /api/assessments/{id}.
func (h *AssessmentHandler) UpdateAssessment(w http.ResponseWriter, r *http.Request) {
	user, assessment, ok := h.resolveUserAndAssessment(w, r)
	if !ok {
		return
	}

	var req UpdateAssessmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	allowed, err := h.accessService.CanManage(r.Context(), assessment, user)
	if err != nil {
		h.respondPolicyError(w, r, err)
		return
	}
	if !allowed {
		shared.RespondWithError(w, r, http.StatusForbidden, "You do not have permission to modify this assessment")
		return
	}

	assessment.Title = req.Title
	assessment.MilestoneID = req.MilestoneID
	assessment.UpdatedAt = time.Now().UTC()
	if err := assessment.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.assessmentStore.Update(r.Context(), assessment); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAssessmentResponse(assessment))
}

// CreateSubmission handles POST /api/assessments/{id}/submissions. Only
// students submit; access follows the same membership rules as viewing.
func (h *AssessmentHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	user, assessment, ok := h.resolveUserAndAssessment(w, r)
	if !ok {
		return
	}

	if user.Role != auth.RoleStudent {
		shared.RespondWithError(w, r, http.StatusForbidden, "Only students may submit")
		return
	}

	var req CreateSubmissionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	allowed, err := h.accessService.CanAccess(r.Context(), assessment, user)
	if err != nil {
		h.respondPolicyError(w, r, err)
		return
	}
	if !allowed {
		shared.RespondWithError(w, r, http.StatusForbidden, "You do not have access to this assessment")
		return
	}

	submission, err := assessments.NewSubmission(assessment.ID, user.ID, req.Content)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.assessmentStore.CreateSubmission(r.Context(), submission); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmissionResponse{
		ID:           submission.ID,
		AssessmentID: submission.AssessmentID,
		StudentID:    submission.StudentID,
		SubmittedAt:  submission.SubmittedAt,
	})
}

// resolveUserAndAssessment loads the authenticated user and the assessment
// named by the {id} path parameter. On failure it writes the response itself
// and returns ok=false.
func (h *AssessmentHandler) resolveUserAndAssessment(
	w http.ResponseWriter,
	r *http.Request,
) (*auth.User, *assessments.Assessment, bool) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, nil, false
	}

	assessmentID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid assessment ID")
		return nil, nil, false
	}

	user, err := h.userReader.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return nil, nil, false
		}
		log.Error("failed to resolve authenticated user", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return nil, nil, false
	}

	assessment, err := h.assessmentStore.GetByID(r.Context(), assessmentID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return nil, nil, false
	}

	return user, assessment, true
}

// respondPolicyError reports a policy evaluation failure. A failure here is
// an infrastructure problem, never a legitimate denial, so it surfaces as 500
// rather than 403.
func (h *AssessmentHandler) respondPolicyError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(
		w,
		r,
		http.StatusInternalServerError,
		"Failed to evaluate access",
		err,
	)
}
