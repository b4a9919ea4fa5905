package controllers

import (
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/boticaviva/backend/api/responses"
	"github.com/boticaviva/backend/pkg/config"
	"github.com/boticaviva/backend/pkg/db"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	redispkg "github.com/boticaviva/backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BoticaViva-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, database *db.Client, cache *redispkg.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-BoticaViva-Env", cfg.App.Env)

		// check every dependency so one outage does not mask another
		var errs []error
		if err := database.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
		if err := cache.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
		if combined := multierr.Combine(errs...); combined != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
