package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/boticaviva/backend/api/responses"
	"github.com/boticaviva/backend/pkg/auth"
	"github.com/boticaviva/backend/pkg/config"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
)

type adminKey struct{}

// AdminAuth verifies the bearer token on back-office routes.
func AdminAuth(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(raw, "Bearer ") {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := auth.VerifyAdminToken(cfg, strings.TrimPrefix(raw, "Bearer "))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.Role != auth.AdminRole {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}

			ctx = context.WithValue(ctx, adminKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaims extracts the verified claims placed by AdminAuth.
func AdminClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(adminKey{}).(*auth.Claims); ok {
		return claims
	}
	return nil
}
