package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openfleet/carrental/pkg/auth"
)

var errNoToken = errors.New("missing bearer token")

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// ClaimsFromContext returns the authenticated caller's claims, if any
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// Authenticator validates bearer tokens and attaches claims to requests
type Authenticator struct {
	tokens *auth.TokenManager
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Optional attaches claims when a valid bearer token is present and passes
// the request through either way. Endpoints that merely behave differently
// for logged-in callers use this.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := a.claimsFromRequest(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// Required rejects requests without a valid bearer token
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.claimsFromRequest(r)
		if err != nil {
			unauthorized(w, "not logged in")
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
		next.ServeHTTP(w, r)
	})
}

// AdminOnly rejects requests from callers without the admin flag
func (a *Authenticator) AdminOnly(next http.Handler) http.Handler {
	return a.Required(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if claims == nil || !claims.IsAdmin {
			forbidden(w, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Authenticator) claimsFromRequest(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return nil, errNoToken
	}
	return a.tokens.Validate(token)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

func forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
