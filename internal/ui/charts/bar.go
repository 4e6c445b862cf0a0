package charts

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders a single-series bar chart. With opts.Horizontal the bars grow
// to the right and labels sit on the left axis, first row on top.
func Bars(width, height int, values []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("charts: values required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("charts: labels length must match values")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5e1")
	color := fallback(opts.Color, defaultPalette[0])

	// Horizontal charts need room for seller names on the left.
	left := padding
	if opts.Horizontal {
		left = padding * 3
	}
	chartWidth := float64(width) - left - padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("charts: viewport too small")
	}

	minVal, maxVal := axisRange(bounds(values))
	span := maxVal - minVal

	var b strings.Builder
	header(&b, width, height, opts.Title, fallback(opts.Description, "Gráfico de barras"), "bar")

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		value := minVal + span*ratio
		label := template.HTMLEscapeString(formatTick(value))
		if opts.Horizontal {
			x := left + ratio*chartWidth
			b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", x, padding, x, padding+chartHeight, gridColor))
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x, padding+chartHeight+14, axisColor, label))
			continue
		}
		y := padding + chartHeight - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", left, y, left+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", left-6, y+4, axisColor, label))
	}

	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-hidden=\"true\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", left, padding, left, padding+chartHeight))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", left, padding+chartHeight, left+chartWidth, padding+chartHeight))
	b.WriteString("</g>")

	slot := chartHeight / float64(len(values))
	if !opts.Horizontal {
		slot = chartWidth / float64(len(values))
	}
	thickness := slot * 0.6

	for i, value := range values {
		length := (value - minVal) / span
		label := template.HTMLEscapeString(labels[i])
		valueText := template.HTMLEscapeString(formatTick(value))

		if opts.Horizontal {
			y := padding + float64(i)*slot + (slot-thickness)/2
			w := length * chartWidth
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"><title>%s: %s</title></rect>", left, y, w, thickness, color, label, valueText))
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", left-6, y+thickness/2+4, axisColor, label))
			if opts.ShowValues {
				b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", left+w+4, y+thickness/2+4, axisColor, valueText))
			}
			continue
		}

		x := left + float64(i)*slot + (slot-thickness)/2
		h := length * chartHeight
		y := padding + chartHeight - h
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"><title>%s: %s</title></rect>", x, y, thickness, h, color, label, valueText))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x+thickness/2, padding+chartHeight+14, axisColor, label))
		if opts.ShowValues {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x+thickness/2, y-4, axisColor, valueText))
		}
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
