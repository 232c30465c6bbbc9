package session

import (
	"encoding/json"
	"net/http"

	"github.com/Buyaki01/airbnb-api/pkg/logger"
)

// RequireAuth verifies the session and injects claims into the request
// context. Anonymous and Rejected sessions both get 401: these endpoints
// demand identity.
func RequireAuth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := Extract(r, verifier)
			switch sess.State {
			case Authenticated:
				ctx := NewContext(r.Context(), sess.Claims)
				ctx = logger.WithUserID(ctx, sess.Claims.UserID)
				next.ServeHTTP(w, r.WithContext(ctx))
			case Anonymous:
				writeAuthError(w, "authentication required")
			default:
				writeAuthError(w, "invalid or expired token")
			}
		})
	}
}

// OptionalAuth injects claims when a valid credential is present and lets
// anonymous requests through. A presented-but-broken credential is still
// rejected rather than treated as anonymous.
func OptionalAuth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := Extract(r, verifier)
			switch sess.State {
			case Authenticated:
				ctx := NewContext(r.Context(), sess.Claims)
				ctx = logger.WithUserID(ctx, sess.Claims.UserID)
				next.ServeHTTP(w, r.WithContext(ctx))
			case Anonymous:
				next.ServeHTTP(w, r)
			default:
				writeAuthError(w, "invalid or expired token")
			}
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
