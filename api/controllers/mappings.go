package controllers

import (
	"net/http"

	"github.com/boticaviva/backend/api/responses"
	"github.com/boticaviva/backend/api/validators"
	"github.com/boticaviva/backend/internal/catalog"
	"github.com/boticaviva/backend/pkg/enums"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
)

func ListCategoryMappings(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		mappings, err := svc.ListMappings(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, mappings)
	}
}

type upsertMappingRequest struct {
	ExternalCategoryID string `json:"external_category_id" validate:"required"`
	Category           string `json:"category" validate:"required"`
}

func UpsertCategoryMapping(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input upsertMappingRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := enums.ParseProductCategory(input.Category)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
				WithDetails(map[string]string{"category": input.Category}))
			return
		}

		if err := svc.UpsertMapping(ctx, input.ExternalCategoryID, category); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.Mapping{
			ExternalCategoryID: input.ExternalCategoryID,
			Category:           category,
		})
	}
}
