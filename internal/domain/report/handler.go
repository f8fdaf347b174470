package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wasteworks/wasteworks-api/internal/middleware"
	"github.com/wasteworks/wasteworks-api/internal/pkg/errorhandler"
	"github.com/wasteworks/wasteworks-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Points handles GET /reports/points
func (h *Handler) Points(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Points(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "report.points", err)
		return
	}
	response.OK(w, summary)
}

// Compliance handles GET /reports/compliance
func (h *Handler) Compliance(w http.ResponseWriter, r *http.Request) {
	dist, err := h.svc.Compliance(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "report.compliance", err)
		return
	}
	response.OK(w, dist)
}

// Penalties handles GET /reports/penalties
func (h *Handler) Penalties(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Penalties(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "report.penalties", err)
		return
	}
	response.OK(w, summary)
}

// Wards handles GET /reports/wards
func (h *Handler) Wards(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Wards(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "report.wards", err)
		return
	}
	response.OK(w, board)
}

// Routes returns report routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/points", h.Points)
	r.Get("/compliance", h.Compliance)
	r.Get("/penalties", h.Penalties)
	r.Get("/wards", h.Wards)

	return r
}
