package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

var recordColumns = []string{
	"Produto",
	"Categoria do Produto",
	"Preço",
	"Frete",
	"Data da Compra",
	"Vendedor",
	"Local da compra",
	"Avaliação da compra",
	"Tipo de pagamento",
	"Quantidade de parcelas",
	"lat",
	"lon",
}

type ExportHandlers struct {
	dashboard Renderer
	logger    *slog.Logger
}

func NewExportHandlers(dashboard Renderer, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		dashboard: dashboard,
		logger:    observability.ForComponent(logger, observability.ComponentHTTP),
	}
}

// HandleRecordsCSV streams the filtered records of one render cycle as CSV.
func (h *ExportHandlers) HandleRecordsCSV(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	filter, err := FilterFromQuery(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	view, err := h.dashboard.RenderCycle(r.Context(), filter)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	filename := fmt.Sprintf("vendas-%s.csv", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-store")

	if err := WriteRecordsCSV(w, view.Records); err != nil {
		h.logger.Error("write csv export", "error", err, "request_id", requestID)
		return
	}
	h.logger.Info("records exported", "records", len(view.Records), "request_id", requestID)
}

// WriteRecordsCSV writes records with the upstream column names.
func WriteRecordsCSV(w io.Writer, records []models.SaleRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(recordColumns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{
			rec.Product,
			rec.Category,
			rec.Price.String(),
			rec.Freight.String(),
			rec.PurchaseDate.Format("02/01/2006"),
			rec.Seller,
			rec.Location,
			strconv.Itoa(rec.Rating),
			rec.PaymentType,
			strconv.Itoa(rec.Installments),
			strconv.FormatFloat(rec.Lat, 'f', -1, 64),
			strconv.FormatFloat(rec.Lon, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
