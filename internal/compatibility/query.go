package compatibility

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// VehicleQuery identifies the vehicle whose products are requested.
type VehicleQuery struct {
	BrandSlug    string  `json:"brandSlug" validate:"required"`
	ModelSlug    string  `json:"modelSlug" validate:"required"`
	Motorisation *string `json:"motorisation"`
	VehicleModel *string `json:"vehicleModel"`
	Year         *int    `json:"year" validate:"omitempty,min=1900,max=2100"`
}

// Normalize trims every field and drops blank optional values.
func (q VehicleQuery) Normalize() VehicleQuery {
	q.BrandSlug = strings.TrimSpace(q.BrandSlug)
	q.ModelSlug = strings.TrimSpace(q.ModelSlug)
	q.Motorisation = trimOptional(q.Motorisation)
	q.VehicleModel = trimOptional(q.VehicleModel)
	return q
}

// Validate reports missing or out of range parameters as ErrInvalidQuery.
func (q VehicleQuery) Validate() error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	details := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeInvalidQuery, ErrInvalidQuery, "invalid vehicle query").WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Vehicle is a query resolved to stored records.
type Vehicle struct {
	Brand        models.Brand
	Model        models.VehicleModel
	Motorisation string
	VehicleModel string
	Year         *int
}

func newVehicle(q VehicleQuery, brand models.Brand, model models.VehicleModel) Vehicle {
	v := Vehicle{Brand: brand, Model: model, Year: q.Year}
	if q.Motorisation != nil {
		v.Motorisation = *q.Motorisation
	}
	if q.VehicleModel != nil {
		v.VehicleModel = *q.VehicleModel
	}
	return v
}
