package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilter_IsValid(t *testing.T) {
	f := DefaultFilter()
	require.NoError(t, f.Validate())
	assert.Equal(t, Query{}, f.Query())
}

func TestFilterState_Normalize(t *testing.T) {
	f := FilterState{
		Region:  "  ",
		Year:    2022,
		Sellers: []string{"Ana", " ", "Ana", "Bruno "},
	}.Normalize()

	assert.Equal(t, RegionAll, f.Region)
	assert.Equal(t, 2022, f.Year)
	assert.Equal(t, DefaultTopSellers, f.TopSellers)
	assert.Equal(t, []string{"Ana", "Bruno"}, f.Sellers)
}

func TestFilterState_NormalizeAllYearsClearsYear(t *testing.T) {
	f := FilterState{Region: "Sul", AllYears: true, Year: 2021}.Normalize()
	assert.Zero(t, f.Year)
}

func TestFilterState_NormalizeDefaultsYear(t *testing.T) {
	f := FilterState{Region: "Sul"}.Normalize()
	assert.Equal(t, MinYear, f.Year)
}

func TestFilterState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  FilterState
		wantErr string
	}{
		{"default", DefaultFilter(), ""},
		{"region", FilterState{Region: "Atlantis", AllYears: true, TopSellers: 5}, "invalid region"},
		{"year too low", FilterState{Region: "Sul", Year: 2019, TopSellers: 5}, "invalid year"},
		{"year too high", FilterState{Region: "Sul", Year: 2024, TopSellers: 5}, "invalid year"},
		{"missing year", FilterState{Region: "Sul", TopSellers: 5}, "invalid year"},
		{"top sellers too low", FilterState{Region: "Sul", AllYears: true, TopSellers: 1}, "invalid topsellers"},
		{"top sellers too high", FilterState{Region: "Sul", AllYears: true, TopSellers: 11}, "invalid topsellers"},
		{"year bounds", FilterState{Region: "Norte", Year: 2023, TopSellers: 10}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilterState_Query(t *testing.T) {
	f := FilterState{Region: "Centro-Oeste", Year: 2021, TopSellers: 5}
	assert.Equal(t, Query{Region: "Centro-Oeste", Year: 2021}, f.Query())

	f = FilterState{Region: RegionAll, AllYears: true, Year: 2021, TopSellers: 5}
	assert.Equal(t, Query{}, f.Query())
}
