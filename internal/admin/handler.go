package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"greentax/internal/admin/types"
	"greentax/internal/platform/middleware"
	"greentax/pkg/domain"
	"greentax/pkg/platform/httputil"
)

// DashboardService builds the admin dashboard.
type DashboardService interface {
	Dashboard(ctx context.Context) (*types.Dashboard, error)
}

type Handler struct {
	service DashboardService
	guard   middleware.RoleGuard
}

func NewHandler(service DashboardService, guard middleware.RoleGuard) *Handler {
	return &Handler{service: service, guard: guard}
}

// Register mounts the dashboard on an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.guard(domain.RoleAdmin)).Get("/admin/dashboard", h.HandleDashboard)
}

// HandleDashboard handles GET /admin/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDashboard(dashboard))
}
