package penalty

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// Issue handles POST /penalties
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			response.BadRequest(w, "due_date must be RFC3339")
			return
		}
		dueDate = &parsed
	}

	issuedBy := middleware.GetActorID(r.Context())

	p, err := h.svc.Issue(r.Context(), accountID, ViolationType(req.ViolationType), req.Amount, req.Description, dueDate, issuedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, p.ToResponse())
}

// Pay handles POST /penalties/{id}/pay
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid penalty id")
		return
	}

	var req PayRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	p, err := h.svc.Pay(r.Context(), id, req.PaidAmount, req.PaymentMethod)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p.ToResponse())
}

// Cancel handles POST /penalties/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid penalty id")
		return
	}

	var req CancelRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	p, err := h.svc.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p.ToResponse())
}

// Get handles GET /penalties/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid penalty id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p.ToResponse())
}

// List handles GET /penalties
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var status *Status
	if st := r.URL.Query().Get("status"); st != "" {
		s := Status(st)
		status = &s
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	penalties, err := h.svc.List(r.Context(), status, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, toResponses(penalties))
}

// ListByAccount handles GET /accounts/{id}/penalties
func (h *Handler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	penalties, err := h.svc.ListByAccount(r.Context(), accountID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, toResponses(penalties))
}

func toResponses(penalties []PenaltyRecord) []*PenaltyResponse {
	out := make([]*PenaltyResponse, 0, len(penalties))
	for i := range penalties {
		out = append(out, penalties[i].ToResponse())
	}
	return out
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var insufficient *InsufficientPaymentError
	switch {
	case errors.As(err, &insufficient):
		response.ErrorWithDetails(w, http.StatusBadRequest, "INSUFFICIENT_PAYMENT",
			insufficient.Error(), map[string]string{
				"required": insufficient.Required.String(),
				"received": insufficient.Received.String(),
			})
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "penalty not found")
	case errors.Is(err, ErrAccountNotFound):
		response.NotFound(w, "account not found")
	case errors.Is(err, ErrAlreadyPaid):
		response.Error(w, http.StatusBadRequest, "ALREADY_PAID", "penalty already paid")
	case errors.Is(err, ErrCancelled):
		response.Error(w, http.StatusBadRequest, "CANCELLED", "penalty cancelled")
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidViolationType):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w)
	}
}

// Routes returns penalty routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequireStaff()).Post("/", h.Issue)
	r.With(middleware.RequireStaff()).Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.With(middleware.RequireStaff()).Post("/{id}/pay", h.Pay)
	r.With(middleware.RequireAdmin()).Post("/{id}/cancel", h.Cancel)

	return r
}
