package blogapi

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/netdepviet/blogadmin/internal/constants"
)

var validate = newValidator()

// newValidator builds the shared validator. Field names in validation errors
// use the json tag so they line up with what the server reports.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ValidatePayload validates a request payload before it is sent. Failures
// are reported as a ValidationError with per-field messages, the same shape
// server-side validation failures normalize to.
func ValidatePayload(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &APIError{Message: err.Error(), Status: constants.HTTPStatusBadRequest}
	}

	fields := make([]FieldError, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields = append(fields, FieldError{
			Field:    fieldErr.Field(),
			Messages: []string{validationMessage(fieldErr)},
		})
	}

	return &ValidationError{Status: constants.HTTPStatusUnprocessable, Fields: fields}
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters"
	case "url":
		return fieldErr.Field() + " must be a valid URL"
	default:
		return fieldErr.Field() + " is invalid"
	}
}

// Validate checks the payload before a create call.
func (r *PostCreateRequest) Validate() error { return ValidatePayload(r) }

// Validate checks the payload before an update call.
func (r *PostUpdateRequest) Validate() error { return ValidatePayload(r) }

// Validate checks the payload before a create call.
func (r *CategoryCreateRequest) Validate() error { return ValidatePayload(r) }

// Validate checks the payload before an update call.
func (r *CategoryUpdateRequest) Validate() error { return ValidatePayload(r) }
