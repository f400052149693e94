package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"greentax/internal/platform/middleware"
	"greentax/internal/society/models"
	"greentax/pkg/domain"
	"greentax/pkg/platform/httputil"
	"greentax/pkg/requestcontext"
)

// Service defines the society operations the handler needs.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (*models.Society, error)
	Get(ctx context.Context, id domain.SocietyID) (*models.Society, error)
	Deactivate(ctx context.Context, id domain.SocietyID) (*models.Society, error)
}

// Handler wires society endpoints to the society service.
type Handler struct {
	service Service
	logger  *slog.Logger
	guard   middleware.RoleGuard
}

func New(service Service, logger *slog.Logger, guard middleware.RoleGuard) *Handler {
	return &Handler{service: service, logger: logger, guard: guard}
}

// Register mounts society endpoints on the router. Callers must have
// authenticated the request already.
func (h *Handler) Register(r chi.Router) {
	r.With(h.guard(domain.RoleAdmin)).Post("/societies", h.HandleRegister)
	r.Get("/societies/{societyID}", h.HandleGet)
	r.With(h.guard(domain.RoleAdmin)).Post("/societies/{societyID}/deactivate", h.HandleDeactivate)
}

// HandleRegister handles POST /societies.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	society, err := h.service.Register(ctx, req.Registration())
	if err != nil {
		h.logger.WarnContext(ctx, "society registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromSociety(society))
}

// HandleGet handles GET /societies/{societyID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	societyID, err := domain.ParseSocietyID(chi.URLParam(r, "societyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	society, err := h.service.Get(r.Context(), societyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSociety(society))
}

// HandleDeactivate handles POST /societies/{societyID}/deactivate.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	societyID, err := domain.ParseSocietyID(chi.URLParam(r, "societyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	society, err := h.service.Deactivate(ctx, societyID)
	if err != nil {
		h.logger.WarnContext(ctx, "society deactivation failed",
			"request_id", requestcontext.RequestID(ctx),
			"society_id", societyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSociety(society))
}
