package charts

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/format"
)

// Empty renders the placeholder shown when a chart has no rows.
func Empty(width, height int, title string) template.HTML {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	titleID := makeID(title, "empty-title")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s\" class=\"chart-empty\">", width, height, titleID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(title, "Gráfico"))))
	b.WriteString(fmt.Sprintf("<rect x=\"1\" y=\"1\" width=\"%d\" height=\"%d\" fill=\"none\" stroke=\"#cbd5e1\" stroke-dasharray=\"4,4\"></rect>", width-2, height-2))
	b.WriteString(fmt.Sprintf("<text x=\"%d\" y=\"%d\" fill=\"#64748b\" font-size=\"13\" text-anchor=\"middle\">Sem dados para os filtros selecionados</text>", width/2, height/2))
	b.WriteString("</svg>")
	return template.HTML(b.String())
}

func header(b *strings.Builder, width, height int, title, desc, kind string) {
	titleID := makeID(title, kind+"-title")
	descID := makeID(title, kind+"-desc")
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(title, "Gráfico"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(desc)))
}

// Floats converts exact aggregate values for plotting.
func Floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func bounds(series []float64) (float64, float64) {
	minVal := series[0]
	maxVal := series[0]
	for _, v := range series[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}

// axisRange widens [min, max] to include zero and never collapses.
func axisRange(minVal, maxVal float64) (float64, float64) {
	minVal = math.Min(minVal, 0)
	maxVal = math.Max(maxVal, 0)
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return fmt.Sprintf("%s-%s", cleaned, suffix)
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return format.Decimal(decimal.NewFromFloat(v/1_000_000).Round(1)) + " mi"
	case abs >= 1_000:
		return format.Decimal(decimal.NewFromFloat(v/1_000).Round(1)) + " mil"
	case almostEqual(v, math.Round(v)):
		return format.Integer(int(math.Round(v)))
	default:
		return format.Decimal(decimal.NewFromFloat(v))
	}
}
