package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

var noStore = map[string]string{
	"Cache-Control": "no-store",
}

type APIHandlers struct {
	dashboard Renderer
	logger    *slog.Logger
	startedAt time.Time
}

func NewAPIHandlers(dashboard Renderer, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    observability.ForComponent(logger, observability.ComponentHTTP),
		startedAt: time.Now(),
	}
}

// render runs a cycle from the query filter and writes what pick selects from
// the view. Errors are written as the JSON error envelope.
func (h *APIHandlers) render(w http.ResponseWriter, r *http.Request, pick func(view *models.DashboardView) any) {
	requestID := observability.GetRequestID(r.Context())

	filter, err := FilterFromQuery(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	view, err := h.dashboard.RenderCycle(r.Context(), filter)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	if err := errors.WriteSuccessWithHeaders(w, pick(view), noStore); err != nil {
		h.logger.Error("failed to encode response", "error", err, "request_id", requestID)
	}
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(v *models.DashboardView) any { return v })
}

func (h *APIHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(v *models.DashboardView) any { return v.Records })
}

// HandleRevenue serves /api/revenue/{view}.
func (h *APIHandlers) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	if !isView(name) {
		h.unknownView(w, r, name)
		return
	}
	h.render(w, r, func(v *models.DashboardView) any { return revenueView(v, name) })
}

// HandleSales serves /api/sales/{view}.
func (h *APIHandlers) HandleSales(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	if !isView(name) {
		h.unknownView(w, r, name)
		return
	}
	h.render(w, r, func(v *models.DashboardView) any { return salesView(v, name) })
}

func (h *APIHandlers) HandleSellers(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(v *models.DashboardView) any {
		return map[string]any{
			"sellers":                v.Sellers,
			"top_sellers_by_revenue": v.TopSellersByRevenue,
			"top_sellers_by_count":   v.TopSellersByCount,
			"seller_options":         v.SellerOptions,
		}
	})
}

func (h *APIHandlers) unknownView(w http.ResponseWriter, r *http.Request, name string) {
	err := errors.NotFound("unknown view " + name)
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"version":   "1.0.0",
	}

	errors.WriteSuccessWithHeaders(w, healthData, noStore)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.dashboard.Stats()

	errors.WriteSuccessWithHeaders(w, stats, noStore)
}
