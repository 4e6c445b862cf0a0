package handlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

type stubSource struct {
	records []models.SaleRecord
	err     error
	queries []models.Query
}

func (s *stubSource) Fetch(_ context.Context, q models.Query) ([]models.SaleRecord, error) {
	s.queries = append(s.queries, q)
	return s.records, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []models.SaleRecord {
	return []models.SaleRecord{
		{
			Location: "SP", Lat: -22.19, Lon: -48.79,
			PurchaseDate: time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC),
			Category:     "livros", Price: decimal.RequireFromString("100"), Seller: "Ana",
			Product: "Modelagem preditiva", PaymentType: "boleto", Installments: 1, Rating: 5,
		},
		{
			Location: "SP", Lat: -22.19, Lon: -48.79,
			PurchaseDate: time.Date(2022, time.January, 20, 0, 0, 0, 0, time.UTC),
			Category:     "brinquedos", Price: decimal.RequireFromString("50"), Seller: "Bruno",
			Product: "Cubo mágico", PaymentType: "cartao_credito", Installments: 3, Rating: 4,
		},
		{
			Location: "BA", Lat: -13.29, Lon: -41.71,
			PurchaseDate: time.Date(2022, time.February, 5, 0, 0, 0, 0, time.UTC),
			Category:     "livros", Price: decimal.RequireFromString("200.5"), Seller: "Ana",
			Product: "Iniciando em programação", PaymentType: "boleto", Installments: 1, Rating: 3,
		},
	}
}

func newTestDashboard(src *stubSource) *services.Dashboard {
	return services.NewDashboard(src, testLogger(), nil)
}
