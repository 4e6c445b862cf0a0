package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

type stubSource struct {
	records []models.SaleRecord
	err     error
	queries []models.Query
}

func (s *stubSource) Fetch(_ context.Context, q models.Query) ([]models.SaleRecord, error) {
	s.queries = append(s.queries, q)
	return s.records, s.err
}

func newTestDashboard(src RecordSource) *Dashboard {
	return NewDashboard(src, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetrics())
}

func TestFilterBySellers(t *testing.T) {
	records := threeRecords()

	assert.Equal(t, records, FilterBySellers(records, nil))
	assert.Equal(t, records, FilterBySellers(records, []string{}))

	s1 := FilterBySellers(records, []string{"S1"})
	require.Len(t, s1, 2)
	for _, rec := range s1 {
		assert.Equal(t, "S1", rec.Seller)
	}

	assert.Len(t, FilterBySellers(records, []string{"S1", "S2"}), 3)

	absent := FilterBySellers(records, []string{"Nobody"})
	assert.NotNil(t, absent)
	assert.Empty(t, absent)
}

func TestSellerOptions(t *testing.T) {
	records := threeRecords()
	records = append(records, sale("C", "X", "Aline", "1", day(2022, time.March, 1)))

	assert.Equal(t, []string{"Aline", "S1", "S2"}, SellerOptions(records))
	assert.Equal(t, []string{}, SellerOptions(nil))
}

func TestDashboard_RenderCycle(t *testing.T) {
	src := &stubSource{records: threeRecords()}
	d := newTestDashboard(src)

	view, err := d.RenderCycle(context.Background(), models.FilterState{
		Region:     "Sudeste",
		Year:       2022,
		Sellers:    []string{"S1"},
		TopSellers: 3,
	})
	require.NoError(t, err)

	require.Len(t, src.queries, 1)
	assert.Equal(t, models.Query{Region: "Sudeste", Year: 2022}, src.queries[0])

	assert.Equal(t, []string{"S1", "S2"}, view.SellerOptions)
	assert.Len(t, view.Records, 2)
	assert.Equal(t, 2, view.SalesCount)
	assert.True(t, dec("300").Equal(view.TotalRevenue))
	require.Len(t, view.Sellers, 1)
	assert.Equal(t, "S1", view.Sellers[0].Seller)
	assert.Len(t, view.TopSellersByRevenue, 1)
	assert.Equal(t, 3, view.Filter.TopSellers)

	stats := d.Stats()
	assert.Equal(t, int64(1), stats["render_cycles"])
	assert.Equal(t, int64(0), stats["failed_cycles"])
	assert.Equal(t, int64(2), stats["last_record_count"])
}

func TestDashboard_RenderCycleDefaults(t *testing.T) {
	src := &stubSource{records: []models.SaleRecord{}}
	d := newTestDashboard(src)

	view, err := d.RenderCycle(context.Background(), models.FilterState{AllYears: true})
	require.NoError(t, err)

	assert.Equal(t, models.Query{}, src.queries[0])
	assert.Equal(t, models.RegionAll, view.Filter.Region)
	assert.Equal(t, models.DefaultTopSellers, view.Filter.TopSellers)
	assert.True(t, view.TotalRevenue.IsZero())
	assert.Zero(t, view.SalesCount)
	assert.Empty(t, view.RevenueByLocation)
	assert.Empty(t, view.SalesByMonth)
	assert.Empty(t, view.TopSellersByCount)
}

func TestDashboard_RenderCycleAbsentSeller(t *testing.T) {
	d := newTestDashboard(&stubSource{records: threeRecords()})

	view, err := d.RenderCycle(context.Background(), models.FilterState{AllYears: true, Sellers: []string{"Nobody"}})
	require.NoError(t, err)

	assert.Empty(t, view.Records)
	assert.Equal(t, []string{"S1", "S2"}, view.SellerOptions)
	assert.True(t, view.TotalRevenue.IsZero())
	assert.Empty(t, view.Sellers)
}

func TestDashboard_RenderCycleErrors(t *testing.T) {
	tests := []struct {
		name   string
		source *stubSource
		filter models.FilterState
		code   apperrors.ErrorCode
	}{
		{
			name:   "invalid region",
			source: &stubSource{},
			filter: models.FilterState{Region: "Atlantida", AllYears: true},
			code:   apperrors.CodeValidation,
		},
		{
			name:   "year out of range",
			source: &stubSource{},
			filter: models.FilterState{Year: 2019},
			code:   apperrors.CodeValidation,
		},
		{
			name:   "top sellers out of range",
			source: &stubSource{},
			filter: models.FilterState{AllYears: true, TopSellers: 11},
			code:   apperrors.CodeValidation,
		},
		{
			name:   "source unavailable",
			source: &stubSource{err: apperrors.SourceUnavailable(assert.AnError, "down")},
			filter: models.DefaultFilter(),
			code:   apperrors.CodeSourceUnavailable,
		},
		{
			name: "empty group key",
			source: &stubSource{records: []models.SaleRecord{
				sale("", "X", "S1", "1", day(2022, time.January, 1)),
			}},
			filter: models.DefaultFilter(),
			code:   apperrors.CodeMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDashboard(tt.source)

			view, err := d.RenderCycle(context.Background(), tt.filter)
			require.Error(t, err)
			assert.Nil(t, view)
			assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, int64(1), d.Stats()["failed_cycles"])
		})
	}
}

func TestDashboard_ValidationSkipsFetch(t *testing.T) {
	src := &stubSource{}
	d := newTestDashboard(src)

	_, err := d.RenderCycle(context.Background(), models.FilterState{Region: "Marte"})
	require.Error(t, err)
	assert.Empty(t, src.queries)
}

func TestBuildView_EmptySellerSetEqualsNoFilter(t *testing.T) {
	records := manyRecords()

	withNil, err := BuildView(models.FilterState{TopSellers: 5}, records)
	require.NoError(t, err)
	withEmpty, err := BuildView(models.FilterState{TopSellers: 5, Sellers: []string{}}, records)
	require.NoError(t, err)

	assert.Equal(t, withNil.RevenueByLocation, withEmpty.RevenueByLocation)
	assert.Equal(t, withNil.Sellers, withEmpty.Sellers)
	assert.Equal(t, len(records), withEmpty.SalesCount)
}
