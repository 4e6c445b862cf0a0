// Package templates holds the dashboard's templ components.
package templates

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// DatastarScript is the client bundle matching the datastar-go SDK version.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// writer keeps the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (hw *writer) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *writer) rawf(format string, args ...any) {
	hw.raw(fmt.Sprintf(format, args...))
}

func (hw *writer) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *writer) svg(html template.HTML) {
	hw.raw(string(html))
}

func (hw *writer) component(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// RenderString renders c for an SSE element patch.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
