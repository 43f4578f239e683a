package middleware

import (
	"context"
	"net/http"

	"github.com/inkpost/inkpost-go/internal/identity"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity returns middleware that resolves the Authorization header into an
// identity.Context and attaches it to the request context. It never rejects
// the request: unauthenticated callers pass through and each operation
// enforces its own authentication rule.
func Identity(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := identity.Resolve(r.Header.Get("Authorization"), secret)
			ctx := context.WithValue(r.Context(), identityKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext extracts the resolved identity from the request context.
// Requests that did not pass through Identity resolve as anonymous.
func CallerFromContext(ctx context.Context) identity.Context {
	if caller, ok := ctx.Value(identityKey).(identity.Context); ok {
		return caller
	}
	return identity.Anonymous
}
