package charts

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bubbles renders points as circles on an equirectangular lat/lon frame.
// Circle area is proportional to the point value.
func Bubbles(width, height int, points []Point, opts BubbleOpts) (template.HTML, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("charts: points required")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	geo := opts.Bounds
	if geo == (GeoBounds{}) {
		geo = Brazil
	}
	if geo.MaxLat <= geo.MinLat || geo.MaxLon <= geo.MinLon {
		return "", fmt.Errorf("charts: invalid geographic bounds")
	}
	maxRadius := opts.MaxRadius
	if maxRadius <= 0 {
		maxRadius = DefaultMaxRadius
	}
	color := fallback(opts.Color, defaultPalette[0])
	land := fallback(opts.LandColor, "#f1f5f9")

	maxVal := 0.0
	for _, p := range points {
		maxVal = math.Max(maxVal, p.Value)
	}
	if almostEqual(maxVal, 0) {
		maxVal = 1
	}

	project := func(lat, lon float64) (float64, float64) {
		x := (lon - geo.MinLon) / (geo.MaxLon - geo.MinLon) * float64(width)
		y := (geo.MaxLat - lat) / (geo.MaxLat - geo.MinLat) * float64(height)
		return x, y
	}

	var b strings.Builder
	header(&b, width, height, opts.Title, fallback(opts.Description, "Mapa por estado"), "map")
	b.WriteString(fmt.Sprintf("<rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\" aria-hidden=\"true\"></rect>", width, height, land))

	for _, p := range points {
		x, y := project(p.Lat, p.Lon)
		r := maxRadius * math.Sqrt(math.Max(p.Value, 0)/maxVal)
		text := p.Text
		if text == "" {
			text = formatTick(p.Value)
		}
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" fill-opacity=\"0.55\" stroke=\"%s\"><title>%s: %s</title></circle>",
			x, y, r, color, color, template.HTMLEscapeString(p.Label), template.HTMLEscapeString(text)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
