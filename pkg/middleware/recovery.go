package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/Buyaki01/airbnb-api/pkg/logger"
)

// panicResponse mirrors the error envelope the API handlers write, so a
// recovered panic is indistinguishable from any other internal error on the
// wire.
type panicResponse struct {
	Error panicError `json:"error"`
}

type panicError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Recovery recovers from panics and returns a 500 error instead of crashing.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log := logger.WithContext(r.Context(), l)
					log.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if err := json.NewEncoder(w).Encode(panicResponse{
						Error: panicError{
							Code:    "INTERNAL_ERROR",
							Message: "an internal error occurred",
						},
					}); err != nil {
						log.Error("failed to encode response", slog.String("error", err.Error()))
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
