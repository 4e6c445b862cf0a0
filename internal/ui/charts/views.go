package charts

import (
	"html/template"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
)

// TopLocations is how many states the location bar charts show.
const TopLocations = 5

// LocationMap plots one bubble per state sized by its value.
func LocationMap(rows []models.LocationRow, title string, currency bool) template.HTML {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{
			Label: row.Location,
			Lat:   row.Lat,
			Lon:   row.Lon,
			Value: row.Value.InexactFloat64(),
			Text:  valueText(row.Value, currency),
		})
	}
	html, err := Bubbles(DefaultWidth, DefaultHeight+80, points, BubbleOpts{Title: title})
	if err != nil {
		return Empty(DefaultWidth, DefaultHeight+80, title)
	}
	return html
}

// MonthlyLines draws one line per year over the twelve months.
func MonthlyLines(rows []models.MonthRow, title string) template.HTML {
	labels := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		labels[m-1] = m.String()
	}

	var series []Series
	index := make(map[int]int)
	for _, row := range rows {
		i, ok := index[row.Year]
		if !ok {
			values := make([]float64, 12)
			for j := range values {
				values[j] = math.NaN()
			}
			series = append(series, Series{Name: strconv.Itoa(row.Year), Values: values})
			i = len(series) - 1
			index[row.Year] = i
		}
		series[i].Values[row.Month-1] = row.Value.InexactFloat64()
	}

	html, err := Lines(DefaultWidth, DefaultHeight, series, labels, LineOpts{Title: title, ShowDots: true})
	if err != nil {
		return Empty(DefaultWidth, DefaultHeight, title)
	}
	return html
}

// TopLocationBars charts the first TopLocations rows of a sorted location view.
func TopLocationBars(rows []models.LocationRow, title string) template.HTML {
	rows = rows[:min(len(rows), TopLocations)]
	values := make([]decimal.Decimal, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Value
		labels[i] = row.Location
	}
	return bars(values, labels, title, false)
}

func CategoryBars(rows []models.CategoryRow, title string) template.HTML {
	values := make([]decimal.Decimal, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Value
		labels[i] = row.Category
	}
	return bars(values, labels, title, false)
}

// SellerRevenueBars and SellerCountBars chart top-N seller rows as
// horizontal bars, highest first.
func SellerRevenueBars(rows []models.SellerRow, title string) template.HTML {
	values := make([]decimal.Decimal, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Revenue
		labels[i] = row.Seller
	}
	return bars(values, labels, title, true)
}

func SellerCountBars(rows []models.SellerRow, title string) template.HTML {
	values := make([]decimal.Decimal, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = decimal.NewFromInt(int64(row.Sales))
		labels[i] = row.Seller
	}
	return bars(values, labels, title, true)
}

func bars(values []decimal.Decimal, labels []string, title string, horizontal bool) template.HTML {
	html, err := Bars(DefaultWidth, DefaultHeight, Floats(values), labels, BarOpts{
		Title:      title,
		Horizontal: horizontal,
		ShowValues: true,
	})
	if err != nil {
		return Empty(DefaultWidth, DefaultHeight, title)
	}
	return html
}

func valueText(v decimal.Decimal, currency bool) string {
	if currency {
		return format.Currency(v)
	}
	return format.Integer(int(v.IntPart()))
}
