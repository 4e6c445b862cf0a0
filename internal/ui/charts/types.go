// Package charts renders the dashboard's server-side SVG charts.
package charts

// Series is one named line of a line chart.
type Series struct {
	Name   string
	Values []float64
}

// Point is one bubble of a map chart.
type Point struct {
	Label string
	Lat   float64
	Lon   float64
	Value float64
	Text  string
}

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	Color       string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	Horizontal  bool
	ShowValues  bool
}

// LineOpts customises the multi-series line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	Colors      []string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	ShowDots    bool
}

// BubbleOpts customises the bubble map renderer.
type BubbleOpts struct {
	Title       string
	Description string
	Color       string
	LandColor   string
	MaxRadius   float64
	Bounds      GeoBounds
}

// GeoBounds is the visible lat/lon window of a bubble map.
type GeoBounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Brazil frames the country with a small margin.
var Brazil = GeoBounds{MinLat: -34.5, MaxLat: 6, MinLon: -74.5, MaxLon: -34}

// Defaults for the dashboard charts.
const (
	DefaultWidth     = 560
	DefaultHeight    = 320
	DefaultPadding   = 40.0
	DefaultTicks     = 5
	DefaultMaxRadius = 28.0
)

var defaultPalette = []string{"#2563eb", "#f97316", "#16a34a", "#9333ea", "#dc2626", "#0891b2"}

var dashPatterns = []string{"", "6,4", "2,3", "8,3,2,3"}
