// Package services turns a flat record collection into the dashboard's
// summary views.
package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// accumulator collects one group. first is the index of the record that
// opened the group.
type accumulator struct {
	key   string
	first int
	sum   decimal.Decimal
	count int
}

// groupBy reduces records into accumulators, returned in first-occurrence
// order.
func groupBy(records []models.SaleRecord, key func(models.SaleRecord) string) []*accumulator {
	index := make(map[string]*accumulator)
	order := make([]*accumulator, 0)

	for i, rec := range records {
		k := key(rec)
		acc, ok := index[k]
		if !ok {
			acc = &accumulator{key: k, first: i}
			index[k] = acc
			order = append(order, acc)
		}
		acc.sum = acc.sum.Add(rec.Price)
		acc.count++
	}
	return order
}

func byLocation(r models.SaleRecord) string { return r.Location }
func byCategory(r models.SaleRecord) string { return r.Category }
func bySeller(r models.SaleRecord) string   { return r.Seller }

func byMonth(r models.SaleRecord) string {
	return r.PurchaseDate.Format("2006-01")
}

func revenue(acc *accumulator) decimal.Decimal { return acc.sum }

func count(acc *accumulator) decimal.Decimal { return decimal.NewFromInt(int64(acc.count)) }

// Validate rejects records whose group keys are empty. Such a record would
// open an unnamed group, so the cycle is aborted instead.
func Validate(records []models.SaleRecord) error {
	for i, rec := range records {
		var field string
		switch {
		case rec.Location == "":
			field = "purchase location"
		case rec.Category == "":
			field = "product category"
		case rec.Seller == "":
			field = "seller"
		case rec.PurchaseDate.IsZero():
			field = "purchase date"
		default:
			continue
		}
		appErr := apperrors.MalformedRecord(
			fmt.Errorf("%s is empty", field),
			fmt.Sprintf("record %d could not be aggregated", i),
		)
		appErr.Details = field + " is empty"
		return appErr
	}
	return nil
}

// TotalRevenue is the exact sum of every record price.
func TotalRevenue(records []models.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Price)
	}
	return total
}

func RevenueByLocation(records []models.SaleRecord) []models.LocationRow {
	return locationRows(records, revenue)
}

func SalesByLocation(records []models.SaleRecord) []models.LocationRow {
	return locationRows(records, count)
}

func locationRows(records []models.SaleRecord, value func(*accumulator) decimal.Decimal) []models.LocationRow {
	groups := groupBy(records, byLocation)
	rows := make([]models.LocationRow, 0, len(groups))
	for _, acc := range groups {
		rec := records[acc.first]
		rows = append(rows, models.LocationRow{
			Location: acc.key,
			Lat:      rec.Lat,
			Lon:      rec.Lon,
			Value:    value(acc),
		})
	}
	slices.SortStableFunc(rows, func(a, b models.LocationRow) int {
		return b.Value.Cmp(a.Value)
	})
	return rows
}

func RevenueByMonth(records []models.SaleRecord) []models.MonthRow {
	return monthRows(records, revenue)
}

func SalesByMonth(records []models.SaleRecord) []models.MonthRow {
	return monthRows(records, count)
}

func monthRows(records []models.SaleRecord, value func(*accumulator) decimal.Decimal) []models.MonthRow {
	groups := groupBy(records, byMonth)
	rows := make([]models.MonthRow, 0, len(groups))
	for _, acc := range groups {
		date := records[acc.first].PurchaseDate
		rows = append(rows, models.MonthRow{
			Year:      date.Year(),
			Month:     date.Month(),
			MonthName: date.Month().String(),
			PeriodEnd: MonthEnd(date),
			Value:     value(acc),
		})
	}
	slices.SortFunc(rows, func(a, b models.MonthRow) int {
		return a.PeriodEnd.Compare(b.PeriodEnd)
	})
	return rows
}

// MonthEnd returns the last calendar day of t's month, at midnight UTC.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

func RevenueByCategory(records []models.SaleRecord) []models.CategoryRow {
	return categoryRows(records, revenue)
}

func SalesByCategory(records []models.SaleRecord) []models.CategoryRow {
	return categoryRows(records, count)
}

func categoryRows(records []models.SaleRecord, value func(*accumulator) decimal.Decimal) []models.CategoryRow {
	groups := groupBy(records, byCategory)
	rows := make([]models.CategoryRow, 0, len(groups))
	for _, acc := range groups {
		rows = append(rows, models.CategoryRow{Category: acc.key, Value: value(acc)})
	}
	slices.SortStableFunc(rows, func(a, b models.CategoryRow) int {
		return b.Value.Cmp(a.Value)
	})
	return rows
}

// BySeller pairs revenue and sale count per seller, ordered by seller name.
func BySeller(records []models.SaleRecord) []models.SellerRow {
	groups := groupBy(records, bySeller)
	rows := make([]models.SellerRow, 0, len(groups))
	for _, acc := range groups {
		rows = append(rows, models.SellerRow{Seller: acc.key, Revenue: acc.sum, Sales: acc.count})
	}
	slices.SortFunc(rows, func(a, b models.SellerRow) int {
		return cmp.Compare(a.Seller, b.Seller)
	})
	return rows
}

func TopSellersByRevenue(rows []models.SellerRow, n int) []models.SellerRow {
	return topSellers(rows, n, func(a, b models.SellerRow) int {
		return b.Revenue.Cmp(a.Revenue)
	})
}

func TopSellersByCount(rows []models.SellerRow, n int) []models.SellerRow {
	return topSellers(rows, n, func(a, b models.SellerRow) int {
		return cmp.Compare(b.Sales, a.Sales)
	})
}

func topSellers(rows []models.SellerRow, n int, metric func(a, b models.SellerRow) int) []models.SellerRow {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b models.SellerRow) int {
		if c := metric(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Seller, b.Seller)
	})
	n = max(0, min(n, len(sorted)))
	if sorted == nil {
		return []models.SellerRow{}
	}
	return sorted[:n]
}
