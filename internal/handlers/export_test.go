package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sales-dashboard/internal/errors"
)

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, testRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, recordColumns, rows[0])
	assert.Equal(t, []string{
		"Modelagem preditiva", "livros", "100", "0", "10/01/2022", "Ana", "SP",
		"5", "boleto", "1", "-22.19", "-48.79",
	}, rows[1])
}

func TestExportHandlers_HandleRecordsCSV(t *testing.T) {
	handlers := NewExportHandlers(newTestDashboard(&stubSource{records: testRecords()}), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleRecordsCSV(w, httptest.NewRequest(http.MethodGet, "/export/records.csv?seller=Bruno", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="vendas-`))

	rows, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bruno", rows[1][5])
}

func TestExportHandlers_SourceError(t *testing.T) {
	src := &stubSource{err: apperrors.SourceUnavailable(assert.AnError, "sales API unreachable")}
	handlers := NewExportHandlers(newTestDashboard(src), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleRecordsCSV(w, httptest.NewRequest(http.MethodGet, "/export/records.csv", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
