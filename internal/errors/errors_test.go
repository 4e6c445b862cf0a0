package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{RateLimit("slow down"), http.StatusTooManyRequests},
		{SourceUnavailable(io.EOF, "upstream down"), http.StatusBadGateway},
		{MalformedRecord(io.EOF, "bad date"), http.StatusBadGateway},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
		})
	}
}

func TestHasCode(t *testing.T) {
	base := MalformedRecord(io.ErrUnexpectedEOF, "record 3")
	wrapped := fmt.Errorf("fetch: %w", base)

	assert.True(t, HasCode(wrapped, CodeMalformedRecord))
	assert.False(t, HasCode(wrapped, CodeSourceUnavailable))
	assert.False(t, HasCode(io.EOF, CodeMalformedRecord))
	assert.False(t, HasCode(nil, CodeInternal))

	nested := SourceUnavailable(base, "outer")
	assert.True(t, HasCode(nested, CodeMalformedRecord))
	assert.ErrorIs(t, nested, io.ErrUnexpectedEOF)
}

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	WriteError(w, logger, SourceUnavailable(io.EOF, "sales API unreachable"), "req-1")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code      string `json:"code"`
			Message   string `json:"message"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, string(CodeSourceUnavailable), resp.Error.Code)
	assert.Equal(t, "sales API unreachable", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestWriteError_UnknownErrorIsInternal(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	WriteError(w, logger, io.EOF, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteSuccessWithHeaders(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteSuccessWithHeaders(w, []int{1, 2}, map[string]string{"Cache-Control": "no-store"})
	require.NoError(t, err)

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":[1,2],"success":true}`, w.Body.String())
}
