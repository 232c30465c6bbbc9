// Package session locates and verifies the bearer credential on incoming
// requests. A request is Anonymous (no credential), Authenticated (verified
// claims), or Rejected (credential present but unusable). A broken credential
// is never downgraded to Anonymous: "not logged in" and "your session is
// broken" are different answers.
package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/Buyaki01/airbnb-api/internal/auth"
)

// CookieName is the cookie carrying the token when the Authorization header
// is not used.
const CookieName = "token"

// State classifies the session on an incoming request.
type State int

const (
	// Anonymous means no credential was presented on either channel.
	Anonymous State = iota
	// Authenticated means a credential was presented and verified.
	Authenticated
	// Rejected means a credential was presented but is malformed, invalid,
	// or expired.
	Rejected
)

// Session is the per-request outcome of credential extraction. Claims is
// non-nil only in the Authenticated state.
type Session struct {
	State  State
	Claims *auth.Claims
	Reason string
}

// Verifier verifies a raw token string and returns its claims.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Extract locates a token on the request and verifies it. The Authorization
// header takes precedence over the cookie; exactly one channel is consulted.
func Extract(r *http.Request, verifier Verifier) Session {
	token, found, reason := locateToken(r)
	if !found {
		if reason != "" {
			return Session{State: Rejected, Reason: reason}
		}
		return Session{State: Anonymous}
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		return Session{State: Rejected, Reason: err.Error()}
	}

	return Session{State: Authenticated, Claims: claims}
}

// locateToken returns the raw token and whether one was found. A malformed
// Authorization header yields found=false with a non-empty reason, which
// Extract turns into a rejection.
func locateToken(r *http.Request) (token string, found bool, reason string) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", false, "malformed authorization header"
		}
		return parts[1], true, ""
	}

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true, ""
	}

	return "", false, ""
}

type contextKeyType string

const claimsKey contextKeyType = "session_claims"

// NewContext returns a new context carrying the verified claims.
func NewContext(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the verified claims for the request, or nil for
// an anonymous request.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
