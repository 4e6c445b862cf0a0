package models

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	RegionAll = "Brasil"

	MinYear = 2020
	MaxYear = 2023

	MinTopSellers     = 2
	MaxTopSellers     = 10
	DefaultTopSellers = 5
)

// Regions lists the selector values in display order. RegionAll disables the
// upstream region filter.
var Regions = []string{RegionAll, "Centro-Oeste", "Nordeste", "Norte", "Sudeste", "Sul"}

// FilterState is the widget state of one dashboard session, passed into every
// render cycle.
type FilterState struct {
	Region     string   `json:"region" validate:"required,oneof=Brasil Centro-Oeste Nordeste Norte Sudeste Sul"`
	AllYears   bool     `json:"allYears"`
	Year       int      `json:"year" validate:"omitempty,min=2020,max=2023"`
	Sellers    []string `json:"sellers" validate:"dive,required"`
	TopSellers int      `json:"topSellers" validate:"min=2,max=10"`
}

// Query is the part of the filter state pushed down to the upstream API.
type Query struct {
	Region string
	Year   int
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func filterValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// DefaultFilter is the state of a freshly opened dashboard.
func DefaultFilter() FilterState {
	return FilterState{
		Region:     RegionAll,
		AllYears:   true,
		TopSellers: DefaultTopSellers,
	}
}

// Normalize fills zero values with their defaults and drops blank or
// duplicated seller names.
func (f FilterState) Normalize() FilterState {
	f.Region = strings.TrimSpace(f.Region)
	if f.Region == "" {
		f.Region = RegionAll
	}
	if f.AllYears {
		f.Year = 0
	} else if f.Year == 0 {
		f.Year = MinYear
	}
	if f.TopSellers == 0 {
		f.TopSellers = DefaultTopSellers
	}

	sellers := make([]string, 0, len(f.Sellers))
	for _, s := range f.Sellers {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(sellers, s) {
			continue
		}
		sellers = append(sellers, s)
	}
	f.Sellers = sellers
	return f
}

func (f FilterState) Validate() error {
	if err := filterValidator().Struct(f); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid %s: failed %q constraint", strings.ToLower(fe.Field()), fe.Tag())
		}
		return err
	}
	if !f.AllYears && f.Year == 0 {
		return fmt.Errorf("invalid year: a year is required when not showing all periods")
	}
	return nil
}

// Query maps the filter onto the upstream query parameters.
func (f FilterState) Query() Query {
	q := Query{Year: f.Year}
	if f.Region != RegionAll {
		q.Region = f.Region
	}
	if f.AllYears {
		q.Year = 0
	}
	return q
}
