package controllers

import (
	"context"

	"github.com/boticaviva/backend/api/middleware"
)

// adminSelectionID keys the staged product selection. With a single admin
// credential the token subject is the natural per-admin key.
func adminSelectionID(ctx context.Context) string {
	if claims := middleware.AdminClaims(ctx); claims != nil && claims.Subject != "" {
		return claims.Subject
	}
	return "admin"
}
