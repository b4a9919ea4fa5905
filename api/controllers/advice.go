package controllers

import (
	"net/http"

	"github.com/boticaviva/backend/api/responses"
	"github.com/boticaviva/backend/api/validators"
	"github.com/boticaviva/backend/internal/advice"
	"github.com/boticaviva/backend/pkg/logger"
)

type adviceRequest struct {
	Question string `json:"question" validate:"required"`
}

// GetAdvice answers a shopper's question. The service guarantees a string
// comes back, so this handler cannot fail past validation.
func GetAdvice(svc advice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input adviceRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"answer": svc.GetAdvice(ctx, input.Question),
		})
	}
}
