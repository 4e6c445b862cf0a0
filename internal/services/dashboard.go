package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// RecordSource returns the records matching one upstream query.
type RecordSource interface {
	Fetch(ctx context.Context, q models.Query) ([]models.SaleRecord, error)
}

// Dashboard runs render cycles. It keeps only counters between cycles; every
// cycle fetches and aggregates from scratch.
type Dashboard struct {
	source  RecordSource
	logger  *slog.Logger
	metrics *observability.Metrics

	cycles      atomic.Int64
	failures    atomic.Int64
	lastRecords atomic.Int64
	lastCycle   atomic.Int64
}

func NewDashboard(source RecordSource, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	return &Dashboard{
		source:  source,
		logger:  observability.ForComponent(logger, observability.ComponentDashboard),
		metrics: metrics,
	}
}

// RenderCycle normalizes and validates filter, fetches the matching records
// and derives every view from them.
func (d *Dashboard) RenderCycle(ctx context.Context, filter models.FilterState) (*models.DashboardView, error) {
	ctx, span := observability.StartSpan(ctx, "dashboard.render_cycle")
	defer span.End(d.logger)

	start := time.Now()
	filter = filter.Normalize()
	span.SetTag("region", filter.Region)

	view, err := d.render(ctx, filter)

	d.cycles.Add(1)
	d.lastCycle.Store(time.Now().UnixNano())
	outcome := "ok"
	records := 0
	if err != nil {
		d.failures.Add(1)
		outcome = string(apperrors.AsAppError(err).Code)
		span.SetError(err)
		d.logger.Warn("render cycle failed",
			"region", filter.Region,
			"year", filter.Year,
			"error", err,
			"request_id", observability.GetRequestID(ctx),
		)
	} else {
		records = len(view.Records)
		d.lastRecords.Store(int64(records))
		d.logger.Info("render cycle complete",
			"region", filter.Region,
			"year", filter.Year,
			"sellers", len(filter.Sellers),
			"records", records,
			"duration", time.Since(start),
			"request_id", observability.GetRequestID(ctx),
		)
	}
	d.metrics.ObserveRenderCycle(outcome, records)

	return view, err
}

func (d *Dashboard) render(ctx context.Context, filter models.FilterState) (*models.DashboardView, error) {
	if err := filter.Validate(); err != nil {
		return nil, apperrors.ValidationWrap(err, err.Error())
	}

	records, err := d.source.Fetch(ctx, filter.Query())
	if err != nil {
		return nil, err
	}
	return BuildView(filter, records)
}

// BuildView derives the complete view from the records of one fetch. The
// seller options come from records before the seller filter is applied.
func BuildView(filter models.FilterState, records []models.SaleRecord) (*models.DashboardView, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}

	filtered := FilterBySellers(records, filter.Sellers)
	if filtered == nil {
		filtered = []models.SaleRecord{}
	}
	sellers := BySeller(filtered)

	return &models.DashboardView{
		Filter:        filter,
		SellerOptions: SellerOptions(records),
		Records:       filtered,

		TotalRevenue: TotalRevenue(filtered),
		SalesCount:   len(filtered),

		RevenueByLocation: RevenueByLocation(filtered),
		RevenueByMonth:    RevenueByMonth(filtered),
		RevenueByCategory: RevenueByCategory(filtered),
		SalesByLocation:   SalesByLocation(filtered),
		SalesByMonth:      SalesByMonth(filtered),
		SalesByCategory:   SalesByCategory(filtered),
		Sellers:           sellers,

		TopSellersByRevenue: TopSellersByRevenue(sellers, filter.TopSellers),
		TopSellersByCount:   TopSellersByCount(sellers, filter.TopSellers),
	}, nil
}

// Stats reports cycle counters for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	var lastCycle any
	if ns := d.lastCycle.Load(); ns != 0 {
		lastCycle = time.Unix(0, ns).UTC()
	}
	return map[string]any{
		"render_cycles":     d.cycles.Load(),
		"failed_cycles":     d.failures.Load(),
		"last_record_count": d.lastRecords.Load(),
		"last_cycle_at":     lastCycle,
	}
}
