package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	apperrors "sales-dashboard/internal/errors"
	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/ui/charts"
)

// MaxTableRows caps the raw records table; the CSV export has every row.
const MaxTableRows = 50

// Content renders all three tabs of one render cycle.
func Content(view *models.DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.rawf("<div id=\"%s\">", ContentID)
		hw.component(ctx, RevenueTab(view))
		hw.component(ctx, SalesTab(view))
		hw.component(ctx, SellersTab(view))
		hw.raw("</div>")
		return hw.err
	})
}

func RevenueTab(view *models.DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.rawf("<section id=\"%s\" data-show=\"$tab == 'revenue'\">", RevenueTabID)
		metrics(hw, view)
		hw.raw("<div class=\"columns\"><div>")
		hw.svg(charts.LocationMap(view.RevenueByLocation, "Receita por estado", true))
		hw.svg(charts.TopLocationBars(view.RevenueByLocation, "Top 5 estados em vendas"))
		hw.raw("</div><div>")
		hw.svg(charts.MonthlyLines(view.RevenueByMonth, "Receita mensal"))
		hw.svg(charts.CategoryBars(view.RevenueByCategory, "Receita por categoria"))
		hw.raw("</div></div>")
		recordsTable(hw, view.Records)
		locationTable(hw, view.SalesByLocation)
		hw.raw("</section>")
		return hw.err
	})
}

func SalesTab(view *models.DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.rawf("<section id=\"%s\" data-show=\"$tab == 'sales'\">", SalesTabID)
		metrics(hw, view)
		hw.raw("<div class=\"columns\"><div>")
		hw.svg(charts.LocationMap(view.SalesByLocation, "Vendas por estado", false))
		hw.svg(charts.TopLocationBars(view.SalesByLocation, "Top 5 estados"))
		hw.raw("</div><div>")
		hw.svg(charts.MonthlyLines(view.SalesByMonth, "Quantidade de vendas mensal"))
		hw.svg(charts.CategoryBars(view.SalesByCategory, "Quantidade de vendas por categoria"))
		hw.raw("</div></div></section>")
		return hw.err
	})
}

func SellersTab(view *models.DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		n := view.Filter.TopSellers
		hw := &writer{w: w}
		hw.rawf("<section id=\"%s\" data-show=\"$tab == 'sellers'\">", SellersTabID)
		metrics(hw, view)
		hw.raw("<div class=\"columns\"><div>")
		hw.svg(charts.SellerRevenueBars(view.TopSellersByRevenue, fmt.Sprintf("Top %d vendedores (receita)", n)))
		hw.raw("</div><div>")
		hw.svg(charts.SellerCountBars(view.TopSellersByCount, fmt.Sprintf("Top %d vendedores (quantidade de vendas)", n)))
		hw.raw("</div></div>")

		hw.raw("<table class=\"data-table\"><thead><tr><th>Vendedor</th><th>Receita</th><th>Vendas</th></tr></thead><tbody>")
		for _, row := range view.Sellers {
			hw.raw("<tr><td>")
			hw.text(row.Seller)
			hw.raw("</td><td class=\"num\">")
			hw.text(format.Currency(row.Revenue))
			hw.raw("</td><td class=\"num\">")
			hw.text(format.Integer(row.Sales))
			hw.raw("</td></tr>")
		}
		hw.raw("</tbody></table></section>")
		return hw.err
	})
}

func metrics(hw *writer, view *models.DashboardView) {
	hw.raw("<div class=\"metrics\"><div class=\"metric\"><span>Receita:</span><strong>")
	hw.text(format.Currency(view.TotalRevenue))
	hw.raw("</strong></div><div class=\"metric\"><span>Quantidade de vendas:</span><strong>")
	hw.text(format.Count(view.SalesCount))
	hw.raw("</strong></div></div>")
}

func recordsTable(hw *writer, records []models.SaleRecord) {
	hw.raw("<h3>Vendas</h3>")
	if len(records) == 0 {
		hw.raw("<p class=\"placeholder\">Nenhuma venda encontrada.</p>")
		return
	}
	if len(records) > MaxTableRows {
		hw.rawf("<p class=\"note\">Mostrando %d de %s vendas. Use a exportação CSV para ver todas.</p>",
			MaxTableRows, templ.EscapeString(format.Integer(len(records))))
	}

	hw.raw("<table class=\"data-table\"><thead><tr>")
	for _, h := range []string{"Produto", "Categoria", "Preço", "Frete", "Data da compra", "Vendedor", "Local", "Avaliação", "Pagamento", "Parcelas"} {
		hw.raw("<th>")
		hw.text(h)
		hw.raw("</th>")
	}
	hw.raw("</tr></thead><tbody>")
	for _, rec := range records[:min(len(records), MaxTableRows)] {
		hw.raw("<tr>")
		for _, cell := range []string{
			rec.Product,
			rec.Category,
			format.Decimal(rec.Price),
			format.Decimal(rec.Freight),
			rec.PurchaseDate.Format("02/01/2006"),
			rec.Seller,
			rec.Location,
			optional(rec.Rating),
			rec.PaymentType,
			optional(rec.Installments),
		} {
			hw.raw("<td>")
			hw.text(cell)
			hw.raw("</td>")
		}
		hw.raw("</tr>")
	}
	hw.raw("</tbody></table>")
}

func locationTable(hw *writer, rows []models.LocationRow) {
	hw.raw("<h3>Vendas por estado</h3><table class=\"data-table\"><thead><tr><th>Estado</th><th>Quantidade de vendas</th></tr></thead><tbody>")
	for _, row := range rows {
		hw.raw("<tr><td>")
		hw.text(row.Location)
		hw.raw("</td><td class=\"num\">")
		hw.text(format.Integer(int(row.Value.IntPart())))
		hw.raw("</td></tr>")
	}
	hw.raw("</tbody></table>")
}

func optional(n int) string {
	if n == 0 {
		return ""
	}
	return format.Integer(n)
}

// ErrorBanner reports a failed render cycle in place of the content.
func ErrorBanner(err *apperrors.AppError) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &writer{w: w}
		hw.rawf("<div id=\"%s\" class=\"banner\" role=\"alert\"><strong>", ErrorBannerID)
		hw.text(errorTitle(err.Code))
		hw.raw("</strong> ")
		hw.text(err.Message)
		if err.RequestID != "" {
			hw.raw(" <small>(")
			hw.text(err.RequestID)
			hw.raw(")</small>")
		}
		hw.raw("</div>")
		return hw.err
	})
}

// ClearBanner removes a banner left by an earlier failed cycle.
func ClearBanner() templ.Component {
	return templ.Raw(fmt.Sprintf("<div id=\"%s\"></div>", ErrorBannerID))
}

func errorTitle(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.CodeSourceUnavailable:
		return "API de vendas indisponível."
	case apperrors.CodeMalformedRecord:
		return "Dados de vendas inválidos."
	case apperrors.CodeValidation:
		return "Filtro inválido."
	case apperrors.CodeRateLimit:
		return "Muitas requisições."
	default:
		return "Erro inesperado."
	}
}
