package ledger

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

// Award handles POST /ledger/award
func (h *Handler) Award(w http.ResponseWriter, r *http.Request) {
	var req AwardRequest
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

	awardedBy := middleware.GetActorID(r.Context())

	result, err := h.svc.Award(r.Context(), accountID, req.QuantityKg, QualityGrade(req.QualityGrade), req.SegregationScore, req.Reason, awardedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, result)
}

// Redeem handles POST /ledger/redeem
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
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

	result, err := h.svc.Redeem(r.Context(), accountID, req.Points, RewardType(req.RewardType), req.RewardValue, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, result)
}

// Transactions handles GET /accounts/{id}/transactions
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	transactions, err := h.svc.Transactions(r.Context(), accountID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, transactions)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var insufficient *InsufficientPointsError
	switch {
	case errors.As(err, &insufficient):
		response.ErrorWithDetails(w, http.StatusBadRequest, "INSUFFICIENT_POINTS",
			insufficient.Error(), map[string]string{
				"available": strconv.Itoa(insufficient.Available),
				"requested": strconv.Itoa(insufficient.Requested),
			})
	case errors.Is(err, ErrAccountNotFound):
		response.NotFound(w, "account not found")
	case errors.Is(err, ErrAccountSuspended):
		response.Forbidden(w, "account suspended")
	case errors.Is(err, ErrInvalidGrade):
		response.Error(w, http.StatusBadRequest, "INVALID_GRADE", "quality grade must be A, B, C or D")
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidScore),
		errors.Is(err, ErrInvalidPoints), errors.Is(err, ErrInvalidRewardType):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w)
	}
}

// Routes returns ledger routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Post("/award", h.Award)
	r.Post("/redeem", h.Redeem)

	return r
}
