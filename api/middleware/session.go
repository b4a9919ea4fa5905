package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/boticaviva/backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type sessionKey struct{}

// Session mints or carries the anonymous storefront session id. The header is
// echoed back so a browser without one adopts the minted id.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" || len(sessionID) > 64 {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID extracts the storefront session id placed by Session.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}
