package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Buyaki01/airbnb-api/pkg/logger"
)

func TestRecovery(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("turns a panic into a 500 with the standard error envelope", func(t *testing.T) {
		handler := Recovery(quiet)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "an internal error occurred", body.Error.Message)
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("logs the panic with context fields", func(t *testing.T) {
		var logBuf bytes.Buffer
		l := slog.New(slog.NewJSONHandler(&logBuf, nil))

		handler := Recovery(l)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		req := httptest.NewRequest(http.MethodGet, "/anything", nil)
		req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-7"))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(logBuf.Bytes(), &entry))
		assert.Equal(t, "panic recovered", entry["msg"])
		assert.Equal(t, "boom", entry["panic"])
		assert.Equal(t, "corr-7", entry["correlation_id"])
	})

	t.Run("passes normal requests through untouched", func(t *testing.T) {
		handler := Recovery(quiet)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}
