package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/learningjournal/core/internal/domain/entities"
)

// NewValidator returns a validator that reports fields by their JSON name
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct validation and converts the first failure
// (in field declaration order) into a ValidationError.
func validateRequest(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &entities.ValidationError{Message: err.Error()}
	}

	first := verrs[0]
	if first.Tag() == "required" {
		return entities.MissingField(first.Field())
	}
	return &entities.ValidationError{
		Field:   first.Field(),
		Message: "Invalid value for field: " + first.Field(),
	}
}
