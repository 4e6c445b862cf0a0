// Package source fetches sale records from the upstream products API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/config"
	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

const (
	paramRegion = "regiao"
	paramYear   = "ano"

	maxBodyBytes = 64 << 20
)

// Client issues one GET per call and keeps no state between calls.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func NewClient(cfg config.SourceConfig, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.Resource, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     observability.ForComponent(logger, observability.ComponentSource),
		metrics:    metrics,
	}
}

// Fetch returns every record matching q. Any record that fails parsing aborts
// the whole fetch with a MALFORMED_RECORD error.
func (c *Client) Fetch(ctx context.Context, q models.Query) ([]models.SaleRecord, error) {
	ctx, span := observability.StartSpan(ctx, "source.fetch")
	defer span.End(c.logger)

	reqURL := c.requestURL(q)
	span.SetTag("url", reqURL)

	start := time.Now()
	records, err := c.fetch(ctx, reqURL)
	duration := time.Since(start)

	result := "ok"
	if err != nil {
		result = string(apperrors.AsAppError(err).Code)
		span.SetError(err)
		c.logger.Warn("sales fetch failed",
			"url", reqURL,
			"duration", duration,
			"error", err,
			"request_id", observability.GetRequestID(ctx),
		)
	} else {
		c.logger.Debug("sales fetched",
			"url", reqURL,
			"records", len(records),
			"duration", duration,
			"request_id", observability.GetRequestID(ctx),
		)
	}
	c.metrics.ObserveUpstreamFetch(result, duration)

	return records, err
}

func (c *Client) requestURL(q models.Query) string {
	params := url.Values{}
	params.Set(paramRegion, strings.ToLower(q.Region))
	year := ""
	if q.Year != 0 {
		year = strconv.Itoa(q.Year)
	}
	params.Set(paramYear, year)
	return c.endpoint + "?" + params.Encode()
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]models.SaleRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.SourceUnavailable(err, "could not build sales API request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.SourceUnavailable(err, "sales API unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, apperrors.SourceUnavailable(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			"sales API returned an error",
		)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&raw); err != nil {
		return nil, apperrors.SourceUnavailable(err, "sales API returned an unreadable payload")
	}

	return DecodeRecords(raw)
}

// DecodeRecords parses each upstream object into a SaleRecord.
func DecodeRecords(raw []json.RawMessage) ([]models.SaleRecord, error) {
	records := make([]models.SaleRecord, 0, len(raw))
	for i, item := range raw {
		rec, err := decodeRecord(item)
		if err != nil {
			appErr := apperrors.MalformedRecord(err, fmt.Sprintf("record %d could not be parsed", i))
			appErr.Details = err.Error()
			return nil, appErr
		}
		records = append(records, rec)
	}
	return records, nil
}
