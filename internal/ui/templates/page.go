package templates

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

// Element IDs patched by the SSE endpoints.
const (
	ContentID      = "dashboard-content"
	RevenueTabID   = "tab-revenue"
	SalesTabID     = "tab-sales"
	SellersTabID   = "tab-sellers"
	SellerSelectID = "seller-select"
	ErrorBannerID  = "dashboard-error"

	defaultTab       = "revenue"
	refreshDashboard = "@get('/sse/dashboard')"
)

// Signals is the Datastar signal set of the page. Tab is client-only state.
type Signals struct {
	Region     string   `json:"region"`
	AllYears   bool     `json:"allYears"`
	Year       int      `json:"year"`
	Sellers    []string `json:"sellers"`
	TopSellers int      `json:"topSellers"`
	Tab        string   `json:"tab"`
}

func initialSignals(f models.FilterState) Signals {
	year := f.Year
	if year == 0 {
		year = models.MinYear
	}
	sellers := f.Sellers
	if sellers == nil {
		sellers = []string{}
	}
	return Signals{
		Region:     f.Region,
		AllYears:   f.AllYears,
		Year:       year,
		Sellers:    sellers,
		TopSellers: f.TopSellers,
		Tab:        defaultTab,
	}
}

// Dashboard is the page shell. Content arrives through /sse/dashboard once
// the page initialises.
func Dashboard(filter models.FilterState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(initialSignals(filter))
		if err != nil {
			return err
		}

		hw := &writer{w: w}
		hw.raw("<!DOCTYPE html><html lang=\"pt-BR\"><head><meta charset=\"utf-8\">")
		hw.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		hw.raw("<title>Dashboard de vendas</title>")
		hw.rawf("<script type=\"module\" src=\"%s\"></script>", DatastarScript)
		hw.raw("<style>" + stylesheet + "</style></head>")
		hw.rawf("<body data-signals=\"%s\" data-init=\"%s\">", templ.EscapeString(string(signals)), refreshDashboard)
		hw.raw("<div class=\"layout\"><aside class=\"sidebar\"><h2>Filtros</h2>")
		hw.component(ctx, controls(filter))
		hw.raw("</aside><main><h1>Dashboard de vendas 🛒</h1>")
		hw.rawf("<div id=\"%s\"></div>", ErrorBannerID)
		hw.raw("<nav class=\"tabs\">")
		for _, tab := range []struct{ key, label string }{
			{"revenue", "Receita"},
			{"sales", "Qtd de vendas"},
			{"sellers", "Vendedores"},
		} {
			hw.rawf("<button type=\"button\" data-class:active=\"$tab == '%s'\" data-on:click=\"$tab = '%s'\">", tab.key, tab.key)
			hw.text(tab.label)
			hw.raw("</button>")
		}
		hw.raw("</nav>")
		hw.rawf("<div id=\"%s\"><p class=\"placeholder\">Carregando…</p></div>", ContentID)
		hw.raw("</main></div></body></html>")
		return hw.err
	})
}

func controls(filter models.FilterState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}

		hw.rawf("<label>Região<select data-bind=\"region\" data-on:change=\"%s\">", refreshDashboard)
		for _, region := range models.Regions {
			selected := ""
			if region == filter.Region {
				selected = " selected"
			}
			hw.rawf("<option value=\"%s\"%s>", templ.EscapeString(region), selected)
			hw.text(region)
			hw.raw("</option>")
		}
		hw.raw("</select></label>")

		hw.rawf("<label class=\"inline\"><input type=\"checkbox\" data-bind=\"allYears\" data-on:change=\"%s\">Dados de todo o período</label>", refreshDashboard)
		hw.rawf("<label data-show=\"!$allYears\">Ano <strong data-text=\"$year\"></strong><input type=\"range\" min=\"%d\" max=\"%d\" step=\"1\" data-bind=\"year\" data-on:change=\"%s\"></label>",
			models.MinYear, models.MaxYear, refreshDashboard)

		hw.raw("<label>Vendedores")
		hw.component(ctx, SellerSelect(nil, filter.Sellers))
		hw.raw("</label>")

		hw.rawf("<label data-show=\"$tab == 'sellers'\">Quantidade de vendedores<input type=\"number\" min=\"%d\" max=\"%d\" data-bind=\"topSellers\" data-on:change=\"@get('/sse/sellers')\"></label>",
			models.MinTopSellers, models.MaxTopSellers)

		hw.raw("<a class=\"export\" data-attr:href=\"'/export/records.csv?region=' + encodeURIComponent($region) + ($allYears ? '' : '&year=' + $year) + $sellers.map(s => '&seller=' + encodeURIComponent(s)).join('')\" href=\"/export/records.csv\">Exportar CSV</a>")
		return hw.err
	})
}

// SellerSelect is the seller multi-select. Options come from the unfiltered
// dataset of the last render cycle.
func SellerSelect(options, selected []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		chosen := make(map[string]bool, len(selected))
		for _, s := range selected {
			chosen[s] = true
		}

		hw.rawf("<select id=\"%s\" multiple size=\"8\" data-bind=\"sellers\" data-on:change=\"%s\">", SellerSelectID, refreshDashboard)
		for _, option := range options {
			attr := ""
			if chosen[option] {
				attr = " selected"
			}
			hw.rawf("<option value=\"%s\"%s>", templ.EscapeString(option), attr)
			hw.text(option)
			hw.raw("</option>")
		}
		hw.raw("</select>")
		return hw.err
	})
}
