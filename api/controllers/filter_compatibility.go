package controllers

import (
	"net/http"

	"github.com/angelmondragon/partsfinder-backend/api/responses"
	"github.com/angelmondragon/partsfinder-backend/api/validators"
	"github.com/angelmondragon/partsfinder-backend/internal/compatibility"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

// FilterVariants lists the engine variants recorded for ?brand=&model=.
func FilterVariants(svc compatibility.FilterCompatibilityService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filter compatibility service unavailable"))
			return
		}

		variants, err := svc.Variants(r.Context(), validators.QueryString(r, "brand"), validators.QueryString(r, "model"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variants)
	}
}

type matchProductRequest struct {
	Ref        string `json:"ref" validate:"required,max=64"`
	FilterType string `json:"filterType" validate:"required,max=16"`
}

// FilterMatchProduct resolves a compatibility reference to a catalog filter.
func FilterMatchProduct(svc compatibility.FilterCompatibilityService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "filter compatibility service unavailable"))
			return
		}

		var payload matchProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.MatchProduct(r.Context(), compatibility.MatchProductInput{
			Ref:        payload.Ref,
			FilterType: payload.FilterType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
