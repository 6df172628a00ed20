// Package middleware provides HTTP middleware for authenticating API
// callers and gating the mutating pipeline surface behind token scopes.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Scopes carried in API tokens. Publishing and the analytics feedback
// loop are granted separately so a collector credential cannot publish.
const (
	ScopePublish   = "publish"
	ScopeAnalytics = "analytics"
)

// Principal is an authenticated API caller.
type Principal interface {
	UserID() uuid.UUID
	Can(scope string) bool
}

// TokenValidator turns a bearer token into a Principal.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const principalKey ContextKey = "principal"

// RequireScope returns middleware that authenticates the bearer token and
// rejects callers whose token does not carry scope. Missing or invalid
// credentials are 401; a valid token without the scope is 403.
func RequireScope(validator TokenValidator, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			principal, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.Can(scope) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. The
// "Bearer" prefix is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// PrincipalFrom returns the authenticated caller stored by RequireScope.
func PrincipalFrom(r *http.Request) (Principal, error) {
	principal, ok := r.Context().Value(principalKey).(Principal)
	if !ok {
		return nil, fmt.Errorf("no authenticated principal in request context")
	}
	return principal, nil
}
