package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// DateLayout is the upstream day/month/year format. Single-digit day and month
// are accepted.
const DateLayout = "2/1/2006"

// wireRecord mirrors the upstream JSON object.
type wireRecord struct {
	Product      string              `json:"Produto"`
	Category     string              `json:"Categoria do Produto"`
	Price        decimal.NullDecimal `json:"Preço"`
	Freight      decimal.NullDecimal `json:"Frete"`
	PurchaseDate string              `json:"Data da Compra"`
	Seller       string              `json:"Vendedor"`
	Location     string              `json:"Local da compra"`
	Rating       json.Number         `json:"Avaliação da compra"`
	PaymentType  string              `json:"Tipo de pagamento"`
	Installments json.Number         `json:"Quantidade de parcelas"`
	Lat          *float64            `json:"lat"`
	Lon          *float64            `json:"lon"`
}

func decodeRecord(data []byte) (models.SaleRecord, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return models.SaleRecord{}, err
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(w.PurchaseDate))
	if err != nil {
		return models.SaleRecord{}, fmt.Errorf("purchase date %q: %w", w.PurchaseDate, err)
	}

	if !w.Price.Valid {
		return models.SaleRecord{}, fmt.Errorf("price is missing")
	}
	if w.Price.Decimal.IsNegative() {
		return models.SaleRecord{}, fmt.Errorf("price %s is negative", w.Price.Decimal)
	}

	if w.Lat == nil || w.Lon == nil {
		return models.SaleRecord{}, fmt.Errorf("coordinates are missing")
	}

	rec := models.SaleRecord{
		Location:     strings.TrimSpace(w.Location),
		Lat:          *w.Lat,
		Lon:          *w.Lon,
		PurchaseDate: date,
		Category:     strings.TrimSpace(w.Category),
		Price:        w.Price.Decimal,
		Seller:       strings.TrimSpace(w.Seller),
		Product:      strings.TrimSpace(w.Product),
		PaymentType:  strings.TrimSpace(w.PaymentType),
		Installments: optionalInt(w.Installments),
		Rating:       optionalInt(w.Rating),
	}
	if w.Freight.Valid {
		rec.Freight = w.Freight.Decimal
	}

	switch {
	case rec.Location == "":
		return models.SaleRecord{}, fmt.Errorf("purchase location is missing")
	case rec.Category == "":
		return models.SaleRecord{}, fmt.Errorf("product category is missing")
	case rec.Seller == "":
		return models.SaleRecord{}, fmt.Errorf("seller is missing")
	}

	return rec, nil
}

func optionalInt(n json.Number) int {
	if n == "" {
		return 0
	}
	if v, err := strconv.Atoi(n.String()); err == nil {
		return v
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}
