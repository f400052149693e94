package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"greentax/internal/compliance/models"
	"greentax/internal/compliance/service"
	"greentax/internal/platform/middleware"
	"greentax/pkg/domain"
	"greentax/pkg/platform/httputil"
	"greentax/pkg/requestcontext"
)

// Service defines the compliance operations the handler needs.
type Service interface {
	Evaluate(ctx context.Context, societyID domain.SocietyID) (*models.Record, error)
	Current(ctx context.Context, societyID domain.SocietyID) (*models.Record, error)
	Rebate(ctx context.Context, societyID domain.SocietyID) (*models.Rebate, error)
	ResidentSummary(ctx context.Context, societyID domain.SocietyID) (*service.ResidentSummary, error)
	Heatmap(ctx context.Context) (*models.Heatmap, error)
}

// Handler exposes compliance evaluation and its read models.
type Handler struct {
	service Service
	logger  *slog.Logger
	guard   middleware.RoleGuard
}

func New(service Service, logger *slog.Logger, guard middleware.RoleGuard) *Handler {
	return &Handler{service: service, logger: logger, guard: guard}
}

// Register mounts compliance endpoints on an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.guard(domain.RoleAdmin, domain.RoleSecretary)).Post("/compliance/evaluate", h.HandleEvaluate)
	r.Get("/compliance/{societyID}/current", h.HandleCurrent)
	r.Get("/rebate/{societyID}", h.HandleRebate)
	r.With(h.guard(domain.RoleResident, domain.RoleSecretary)).
		Get("/resident/societies/{societyID}/summary", h.HandleResidentSummary)
	r.With(h.guard(domain.RoleAdmin)).Get("/heatmap/wards", h.HandleHeatmap)
}

// HandleEvaluate handles POST /compliance/evaluate. The evaluation runs
// synchronously and its errors reach the caller.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	record, err := h.service.Evaluate(ctx, req.societyID)
	if err != nil {
		h.logger.WarnContext(ctx, "compliance evaluation failed",
			"request_id", requestID,
			"society_id", req.societyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleCurrent handles GET /compliance/{societyID}/current.
func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	societyID, ok := h.societyParam(w, r)
	if !ok {
		return
	}
	record, err := h.service.Current(r.Context(), societyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleRebate handles GET /rebate/{societyID}.
func (h *Handler) HandleRebate(w http.ResponseWriter, r *http.Request) {
	societyID, ok := h.societyParam(w, r)
	if !ok {
		return
	}
	rebate, err := h.service.Rebate(r.Context(), societyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRebate(rebate))
}

// HandleResidentSummary handles GET /resident/societies/{societyID}/summary.
func (h *Handler) HandleResidentSummary(w http.ResponseWriter, r *http.Request) {
	societyID, ok := h.societyParam(w, r)
	if !ok {
		return
	}
	summary, err := h.service.ResidentSummary(r.Context(), societyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResidentSummary(summary))
}

// HandleHeatmap handles GET /heatmap/wards.
func (h *Handler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	heatmap, err := h.service.Heatmap(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "heatmap failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromHeatmap(heatmap))
}

func (h *Handler) societyParam(w http.ResponseWriter, r *http.Request) (domain.SocietyID, bool) {
	societyID, err := domain.ParseSocietyID(chi.URLParam(r, "societyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.SocietyID{}, false
	}
	return societyID, true
}
