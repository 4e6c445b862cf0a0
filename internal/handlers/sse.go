package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	dashboard Renderer
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard Renderer, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    observability.ForComponent(logger, observability.ComponentSSE),
	}
}

// HandleDashboard re-renders every tab and the seller options.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(view *models.DashboardView) []templ.Component {
		return []templ.Component{
			templates.Content(view),
			templates.SellerSelect(view.SellerOptions, view.Filter.Sellers),
		}
	})
}

func (h *SSEHandlers) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(view *models.DashboardView) []templ.Component {
		return []templ.Component{templates.RevenueTab(view)}
	})
}

func (h *SSEHandlers) HandleSales(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(view *models.DashboardView) []templ.Component {
		return []templ.Component{templates.SalesTab(view)}
	})
}

func (h *SSEHandlers) HandleSellers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(view *models.DashboardView) []templ.Component {
		return []templ.Component{templates.SellersTab(view)}
	})
}

// serve runs one render cycle from the request signals and patches the
// components built from its view. A failed cycle patches the error banner
// and leaves the previous content in place.
func (h *SSEHandlers) serve(w http.ResponseWriter, r *http.Request, build func(*models.DashboardView) []templ.Component) {
	ctx := r.Context()
	requestID := observability.GetRequestID(ctx)

	filter, err := FilterFromSignals(r)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		h.patchError(ctx, sse, err, requestID)
		return
	}

	view, err := h.dashboard.RenderCycle(ctx, filter)
	if err != nil {
		h.patchError(ctx, sse, err, requestID)
		return
	}

	components := append([]templ.Component{templates.ClearBanner()}, build(view)...)
	if err := h.patch(ctx, sse, components...); err != nil {
		h.logger.Error("patch elements", "error", err, "request_id", requestID)
	}
}

func (h *SSEHandlers) patchError(ctx context.Context, sse *datastar.ServerSentEventGenerator, err error, requestID string) {
	appErr := apperrors.AsAppError(err)
	appErr.RequestID = requestID

	level := slog.LevelError
	if appErr.StatusCode < 500 {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, "render cycle failed",
		"error_code", appErr.Code,
		"error", err,
		"request_id", requestID,
	)

	if err := h.patch(ctx, sse, templates.ErrorBanner(appErr)); err != nil {
		h.logger.Error("patch error banner", "error", err, "request_id", requestID)
	}
}

func (h *SSEHandlers) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, components ...templ.Component) error {
	for _, c := range components {
		html, err := templates.RenderString(ctx, c)
		if err != nil {
			return err
		}
		if err := sse.PatchElements(html); err != nil {
			return err
		}
	}
	return nil
}
