package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/partsfinder-backend/api/responses"
	"github.com/angelmondragon/partsfinder-backend/api/validators"
	"github.com/angelmondragon/partsfinder-backend/internal/vehicles"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

func ListBrands(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicles service unavailable"))
			return
		}

		brands, err := svc.ListBrands(r.Context(), validators.QueryString(r, "vehicleType"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

func ListModels(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicles service unavailable"))
			return
		}

		brandSlug := validators.SanitizeString(chi.URLParam(r, "brandSlug"), 200)
		if brandSlug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "brandSlug is required"))
			return
		}

		models, err := svc.ListModels(r.Context(), brandSlug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, models)
	}
}
