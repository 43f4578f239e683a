// Package identity derives the per-request caller identity from a bearer
// credential. Resolution never fails a request: a missing or invalid
// credential simply yields an unauthenticated context, and each operation
// decides for itself whether that is acceptable.
package identity

import (
	"strings"

	"github.com/inkpost/inkpost-go/internal/crypto"
)

// Context is the per-request identity. It is built fresh for every request
// and never persisted.
type Context struct {
	Authenticated bool
	UserID        string
}

// Anonymous is the context for requests without a valid credential.
var Anonymous = Context{}

// Resolve builds a Context from the raw Authorization header value. The
// header must have the form "Bearer <token>" and the token must verify
// against secret; anything else resolves to Anonymous.
func Resolve(authHeader, secret string) Context {
	if authHeader == "" {
		return Anonymous
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return Anonymous
	}

	claims, err := crypto.ValidateToken(token, secret)
	if err != nil {
		return Anonymous
	}

	return Context{Authenticated: true, UserID: claims.UserID}
}
