// Package validation checks request structs and reports the first failure
// as a *models.ValidationError named after the JSON field.
package validation

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/padraicbc/eventresults/models"
)

// Validator wraps a configured validator.Validate.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s.
func (v *Validator) Struct(ctx context.Context, s interface{}) error {
	if err := v.v.StructCtx(ctx, s); err != nil {
		return convert(err)
	}
	return nil
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.Struct(context.Background(), i)
}

func convert(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &models.ValidationError{Msg: "invalid request body"}
	}

	fe := verrs[0]
	msg := "is invalid"
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "uuid":
		msg = "must be a UUID"
	case "email":
		msg = "must be an email address"
	case "oneof":
		msg = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return &models.ValidationError{Field: fe.Field(), Msg: msg}
}
