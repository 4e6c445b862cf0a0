package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// Renderer runs one render cycle per call.
type Renderer interface {
	RenderCycle(ctx context.Context, filter models.FilterState) (*models.DashboardView, error)
	Stats() map[string]any
}

// Query parameters accepted by the JSON and export endpoints.
const (
	paramRegion = "region"
	paramYear   = "year"
	paramSeller = "seller"
	paramTop    = "top"
)

// FilterFromQuery reads a filter from query parameters. A missing or "all"
// year selects every period.
func FilterFromQuery(r *http.Request) (models.FilterState, error) {
	q := r.URL.Query()
	filter := models.DefaultFilter()

	if region := strings.TrimSpace(q.Get(paramRegion)); region != "" {
		filter.Region = region
	}

	if year := strings.TrimSpace(q.Get(paramYear)); year != "" && !strings.EqualFold(year, "all") {
		n, err := strconv.Atoi(year)
		if err != nil {
			return filter, apperrors.ValidationWrap(err, fmt.Sprintf("invalid %s parameter %q", paramYear, year))
		}
		filter.AllYears = false
		filter.Year = n
	}

	filter.Sellers = q[paramSeller]

	if top := strings.TrimSpace(q.Get(paramTop)); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil {
			return filter, apperrors.ValidationWrap(err, fmt.Sprintf("invalid %s parameter %q", paramTop, top))
		}
		filter.TopSellers = n
	}

	return filter, nil
}

// filterSignals is the Datastar signal payload. Numeric signals bound to
// range and number inputs may arrive as strings.
type filterSignals struct {
	Region     string      `json:"region"`
	AllYears   *bool       `json:"allYears"`
	Year       json.Number `json:"year"`
	Sellers    []string    `json:"sellers"`
	TopSellers json.Number `json:"topSellers"`
}

// FilterFromSignals reads the filter from the Datastar signals of r. Absent
// signals keep their defaults.
func FilterFromSignals(r *http.Request) (models.FilterState, error) {
	filter := models.DefaultFilter()

	var signals filterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return filter, apperrors.ValidationWrap(err, "invalid dashboard signals")
	}

	if signals.Region != "" {
		filter.Region = signals.Region
	}
	if signals.AllYears != nil {
		filter.AllYears = *signals.AllYears
	}
	if signals.Year != "" {
		year, err := signals.Year.Int64()
		if err != nil {
			return filter, apperrors.ValidationWrap(err, "invalid year signal")
		}
		filter.Year = int(year)
	}
	filter.Sellers = signals.Sellers
	if signals.TopSellers != "" {
		top, err := signals.TopSellers.Int64()
		if err != nil {
			return filter, apperrors.ValidationWrap(err, "invalid topSellers signal")
		}
		filter.TopSellers = int(top)
	}

	return filter, nil
}
