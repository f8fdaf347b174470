package compliance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wasteworks/wasteworks-api/internal/middleware"
	"github.com/wasteworks/wasteworks-api/internal/pkg/response"
	"github.com/wasteworks/wasteworks-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// PickupQuality handles POST /accounts/{id}/pickup-quality
func (h *Handler) PickupQuality(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	var req PickupQualityRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	newScore, err := h.svc.ApplyPickupQuality(r.Context(), accountID, PickupQuality(req.Quality))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, ScoreResponse{AccountID: accountID.String(), ComplianceScore: newScore})
}

// Rejection handles POST /accounts/{id}/rejections
func (h *Handler) Rejection(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	var req RejectionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	recordedBy := middleware.GetActorID(r.Context())

	newScore, err := h.svc.ApplyRejection(r.Context(), accountID, req.Reason, recordedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, ScoreResponse{AccountID: accountID.String(), ComplianceScore: newScore})
}

// Violation handles POST /accounts/{id}/violations
func (h *Handler) Violation(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	var req ViolationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	recordedBy := middleware.GetActorID(r.Context())

	newScore, err := h.svc.RecordViolation(r.Context(), accountID, ViolationType(req.ViolationType), Severity(req.Severity), req.Notes, recordedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, ScoreResponse{AccountID: accountID.String(), ComplianceScore: newScore})
}

// Assessment handles POST /accounts/{id}/assessments
func (h *Handler) Assessment(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	var req AssessmentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	assessedBy := middleware.GetActorID(r.Context())

	newScore, err := h.svc.ApplyAssessment(r.Context(), accountID, req.OverallScore, assessedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, ScoreResponse{AccountID: accountID.String(), ComplianceScore: newScore})
}

// ListViolations handles GET /accounts/{id}/violations
func (h *Handler) ListViolations(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	violations, err := h.svc.Violations(r.Context(), accountID, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	responses := make([]ViolationResponse, 0, len(violations))
	for i := range violations {
		responses = append(responses, violations[i].ToResponse())
	}

	response.OK(w, responses)
}

// AssessmentAverage handles GET /accounts/{id}/assessments/average
func (h *Handler) AssessmentAverage(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	avg, sampleSize, err := h.svc.AssessmentAverage(r.Context(), accountID, n)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, AssessmentAverageResponse{
		AccountID:    accountID.String(),
		AverageScore: avg,
		SampleSize:   sampleSize,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		response.NotFound(w, "account not found")
	case errors.Is(err, ErrInvalidQuality):
		response.Error(w, http.StatusBadRequest, "INVALID_QUALITY", "quality must be excellent, good, poor or rejected")
	case errors.Is(err, ErrInvalidSeverity):
		response.Error(w, http.StatusBadRequest, "INVALID_SEVERITY", "severity must be low, medium, high or critical")
	case errors.Is(err, ErrInvalidViolationType), errors.Is(err, ErrInvalidScore):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w)
	}
}

// RegisterRoutes attaches compliance routes onto an account-scoped router
// (mounted under /accounts/{id} by the account handler).
func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireStaff()

	r.With(staff).Post("/pickup-quality", h.PickupQuality)
	r.With(staff).Post("/rejections", h.Rejection)
	r.With(staff).Post("/violations", h.Violation)
	r.With(middleware.RequireSupervisor()).Post("/assessments", h.Assessment)

	r.Get("/violations", h.ListViolations)
	r.Get("/assessments/average", h.AssessmentAverage)
}
