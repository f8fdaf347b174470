package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

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

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		Staff:       result.Staff.ToResponse(),
	})
}

// CreateStaff handles POST /auth/staff
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	staff, err := h.svc.CreateStaff(r.Context(), req.Email, req.Name, req.Password, Role(req.Role))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, staff.ToResponse())
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(w, "invalid email or password")
	case errors.Is(err, ErrStaffInactive):
		response.Forbidden(w, "staff account deactivated")
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(w, "email already registered")
	case errors.Is(err, ErrInvalidRole):
		response.BadRequest(w, "role must be collector, supervisor or admin")
	default:
		response.InternalError(w)
	}
}

// Routes returns auth routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin())
		r.Post("/staff", h.CreateStaff)
	})

	return r
}
