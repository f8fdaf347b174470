package account

import (
	"errors"
	"net/http"

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

// Register handles POST /accounts
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	a, err := h.svc.Register(r.Context(), Kind(req.Kind), req.Name, req.Ward)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, a.ToResponse())
}

// Get handles GET /accounts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "account not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, a.ToResponse())
}

// Balance handles GET /accounts/{id}/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "account not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"account_id":       a.ID.String(),
		"point_balance":    a.PointBalance,
		"compliance_score": a.ComplianceScore,
	})
}

// UpdateStatus handles PATCH /accounts/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid account id")
		return
	}

	var req UpdateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	if err := h.svc.SetStatus(r.Context(), id, Status(req.Status)); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "account not found")
		case errors.Is(err, ErrInvalidStatus):
			response.BadRequest(w, "invalid status")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": req.Status})
}

// List handles GET /accounts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{Limit: 50}

	q := r.URL.Query()
	if kind := q.Get("kind"); kind != "" {
		k := Kind(kind)
		filter.Kind = &k
	}
	if ward := q.Get("ward"); ward != "" {
		filter.Ward = &ward
	}
	if status := q.Get("status"); status != "" {
		st := Status(status)
		filter.Status = &st
	}

	accounts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].ToResponse())
	}

	response.OK(w, out)
}

// Routes returns account routes. Other domains hang their account-scoped
// endpoints (transactions, penalties, violations) off /{id} via the
// accountScoped registrars, so the whole subtree lives on one router.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, accountScoped ...func(chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.With(middleware.RequireStaff()).Post("/", h.Register)
	r.With(middleware.RequireStaff()).Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/balance", h.Balance)
		r.With(middleware.RequireAdmin()).Patch("/status", h.UpdateStatus)

		for _, register := range accountScoped {
			register(r)
		}
	})

	return r
}
