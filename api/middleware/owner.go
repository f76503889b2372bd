package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ayakevin/shopledger-backend/api/responses"
	"github.com/ayakevin/shopledger-backend/pkg/config"
	pkgerrors "github.com/ayakevin/shopledger-backend/pkg/errors"
	"github.com/ayakevin/shopledger-backend/pkg/logger"
)

type ownerCtxKey struct{}

// OwnerScope validates the {owner} route parameter against the configured
// tenant set and stores the normalized owner on the request context. The
// domain services stay tenant-agnostic; this is the only place the tenant
// list is consulted.
func OwnerScope(app config.AppConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "owner")))
			if owner == "" || !app.IsTenant(owner) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown owner"))
				return
			}

			ctx := WithOwner(r.Context(), owner)
			if logg != nil {
				ctx = logg.WithOwner(ctx, owner)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithOwner stores the owner on the context. OwnerScope does this for normal
// request flow; it is exposed for handlers exercised outside the router.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerCtxKey{}, owner)
}

// OwnerFromContext returns the owner set by OwnerScope, or "".
func OwnerFromContext(ctx context.Context) string {
	if owner, ok := ctx.Value(ownerCtxKey{}).(string); ok {
		return owner
	}
	return ""
}
