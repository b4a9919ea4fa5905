package controllers

import (
	"net/http"

	"github.com/boticaviva/backend/api/responses"
	"github.com/boticaviva/backend/api/validators"
	"github.com/boticaviva/backend/internal/auth"
	"github.com/boticaviva/backend/pkg/logger"
)

func AdminLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input auth.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Login(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
