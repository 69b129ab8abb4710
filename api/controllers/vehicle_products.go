package controllers

import (
	"net/http"

	"github.com/angelmondragon/partsfinder-backend/api/responses"
	"github.com/angelmondragon/partsfinder-backend/api/validators"
	"github.com/angelmondragon/partsfinder-backend/internal/compatibility"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

// VehicleProducts returns every compatible product for a vehicle, grouped by
// category.
func VehicleProducts(svc compatibility.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compatibility service unavailable"))
			return
		}

		year, err := validators.OptionalQueryInt(r, "year")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := compatibility.VehicleQuery{
			BrandSlug:    validators.QueryString(r, "brandSlug"),
			ModelSlug:    validators.QueryString(r, "modelSlug"),
			Motorisation: validators.OptionalQueryString(r, "motorisation"),
			VehicleModel: validators.OptionalQueryString(r, "vehicleModel"),
			Year:         year,
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithVehicle(ctx, query.BrandSlug, query.ModelSlug)
		}

		result, err := svc.GetAllProductsByVehicle(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessWithMeta(w, result.Data, result.Meta)
	}
}
