package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/ui/templates"
)

func sseRequest(path, signals string) *http.Request {
	target := path
	if signals != "" {
		target += "?datastar=" + url.QueryEscape(signals)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Datastar-Request", "true")
	return req
}

func TestFilterFromSignals(t *testing.T) {
	tests := []struct {
		name    string
		signals string
		want    models.FilterState
		wantErr bool
	}{
		{
			name: "no signals",
			want: models.DefaultFilter(),
		},
		{
			name:    "numbers as strings",
			signals: `{"region":"Sul","allYears":false,"year":"2021","sellers":["Ana"],"topSellers":"7","tab":"sellers"}`,
			want: models.FilterState{
				Region:     "Sul",
				Year:       2021,
				Sellers:    []string{"Ana"},
				TopSellers: 7,
			},
		},
		{
			name:    "numbers as numbers",
			signals: `{"region":"Brasil","allYears":true,"year":2020,"sellers":[],"topSellers":5}`,
			want: models.FilterState{
				Region:     "Brasil",
				AllYears:   true,
				Year:       2020,
				Sellers:    []string{},
				TopSellers: 5,
			},
		},
		{name: "bad json", signals: `{"region":`, wantErr: true},
		{name: "bad year", signals: `{"year":"vinte"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterFromSignals(sseRequest("/sse/dashboard", tt.signals))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSSEHandlers_HandleDashboard(t *testing.T) {
	src := &stubSource{records: testRecords()}
	handlers := NewSSEHandlers(newTestDashboard(src), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, sseRequest("/sse/dashboard", `{"region":"Nordeste","allYears":true,"sellers":[],"topSellers":5}`))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected content-type to contain 'text/event-stream', got %q", ct)
	}

	body := w.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `id="`+templates.ErrorBannerID+`"`)
	assert.Contains(t, body, `id="`+templates.ContentID+`"`)
	assert.Contains(t, body, `id="`+templates.SellerSelectID+`"`)
	assert.Contains(t, body, "R$ 350,50")
	assert.Equal(t, models.Query{Region: "Nordeste"}, src.queries[0])
}

func TestSSEHandlers_TabEndpoints(t *testing.T) {
	handlers := NewSSEHandlers(newTestDashboard(&stubSource{records: testRecords()}), testLogger())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantID  string
		notID   string
	}{
		{"revenue", handlers.HandleRevenue, templates.RevenueTabID, templates.SalesTabID},
		{"sales", handlers.HandleSales, templates.SalesTabID, templates.SellersTabID},
		{"sellers", handlers.HandleSellers, templates.SellersTabID, templates.RevenueTabID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, sseRequest("/sse/"+tt.name, `{"topSellers":3}`))

			body := w.Body.String()
			assert.Contains(t, body, `id="`+tt.wantID+`"`)
			assert.NotContains(t, body, `id="`+tt.notID+`"`)
		})
	}
}

func TestSSEHandlers_ErrorPatchesBanner(t *testing.T) {
	tests := []struct {
		name    string
		source  *stubSource
		signals string
		want    string
	}{
		{
			name:   "source unavailable",
			source: &stubSource{err: apperrors.SourceUnavailable(assert.AnError, "sales API unreachable")},
			want:   "API de vendas indisponível.",
		},
		{
			name:    "invalid filter",
			source:  &stubSource{},
			signals: `{"topSellers":42}`,
			want:    "Filtro inválido.",
		},
		{
			name:    "unreadable signals",
			source:  &stubSource{},
			signals: `not json`,
			want:    "Filtro inválido.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := NewSSEHandlers(newTestDashboard(tt.source), testLogger())

			w := httptest.NewRecorder()
			handlers.HandleDashboard(w, sseRequest("/sse/dashboard", tt.signals))

			body := w.Body.String()
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, body, "role=\"alert\"")
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, `id="`+templates.ContentID+`"`)
		})
	}
}
