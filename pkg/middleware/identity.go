package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/chris/campaign-escrow/pkg/models"
)

const (
	// AccountHeader carries the caller's escrow account id.
	AccountHeader = "X-Account-Id"
	// RootHeader carries the operator token that grants root.
	RootHeader = "X-Root-Token"
)

type originKey struct{}

// Identity resolves the caller of every request into a models.Origin.
// An empty rootToken disables root access.
func Identity(rootToken string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			origin := models.Origin{Account: strings.TrimSpace(r.Header.Get(AccountHeader))}
			if token := r.Header.Get(RootHeader); rootToken != "" && token != "" {
				origin.Root = subtle.ConstantTimeCompare([]byte(token), []byte(rootToken)) == 1
			}
			next.ServeHTTP(w, r.WithContext(WithOrigin(r.Context(), origin)))
		}
		return http.HandlerFunc(fn)
	}
}

// WithOrigin returns a copy of ctx carrying origin.
func WithOrigin(ctx context.Context, origin models.Origin) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext returns the caller set by Identity. Requests that did
// not pass through it are anonymous.
func OriginFromContext(ctx context.Context) models.Origin {
	origin, _ := ctx.Value(originKey{}).(models.Origin)
	return origin
}
