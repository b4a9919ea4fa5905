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

func catalogFilter(r *http.Request) (catalog.Filter, error) {
	filter := catalog.Filter{
		Query: validators.SanitizeString(r.URL.Query().Get("q")),
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
				WithDetails(map[string]string{"category": raw})
		}
		filter.Category = category
	}
	return filter, nil
}

// StorefrontCatalog lists published products for shoppers.
func StorefrontCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filter, err := catalogFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.ListStorefront(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// AdminCatalog lists the full external catalog with publish flags.
func AdminCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filter, err := catalogFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.ListExternal(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

type publishRequest struct {
	ProductIDs []string `json:"product_ids"`
}

func PublishProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input publishRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var err error
		if len(input.ProductIDs) > 0 {
			err = svc.Publish(ctx, input.ProductIDs)
		} else {
			err = svc.PublishSelection(ctx, adminSelectionID(ctx))
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "published"})
	}
}

func UnpublishProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input publishRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var err error
		if len(input.ProductIDs) > 0 {
			err = svc.Unpublish(ctx, input.ProductIDs)
		} else {
			err = svc.UnpublishSelection(ctx, adminSelectionID(ctx))
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "unpublished"})
	}
}

type selectionRequest struct {
	ProductIDs []string `json:"product_ids"`
	All        bool     `json:"all"`
}

func SelectProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input selectionRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var err error
		if input.All {
			filter, ferr := catalogFilter(r)
			if ferr != nil {
				responses.WriteError(ctx, logg, w, ferr)
				return
			}
			err = svc.SelectAll(ctx, adminSelectionID(ctx), filter)
		} else {
			err = svc.Select(ctx, adminSelectionID(ctx), input.ProductIDs...)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		selection, err := svc.Selection(ctx, adminSelectionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, selection)
	}
}

func DeselectProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input selectionRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Deselect(ctx, adminSelectionID(ctx), input.ProductIDs...); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		selection, err := svc.Selection(ctx, adminSelectionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, selection)
	}
}

func GetSelection(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		selection, err := svc.Selection(ctx, adminSelectionID(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, selection)
	}
}

func ClearSelection(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.ClearSelection(ctx, adminSelectionID(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
