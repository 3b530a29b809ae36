package blogapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// GenericErrorMessage is used when a failure cannot be parsed into either
// structured shape.
const GenericErrorMessage = "unknown error"

// APIError is a failure the server described with a single human-readable
// message.
type APIError struct {
	Message string                 `json:"message"        yaml:"message"`
	Status  int                    `json:"status"         yaml:"status"`
	Data    map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.Status)
}

// FieldError carries the validation messages for one field.
type FieldError struct {
	Field    string   `json:"field"    yaml:"field"`
	Messages []string `json:"messages" yaml:"messages"`
}

// ValidationError is a failure the server (or client-side validation)
// described as a collection of per-field messages.
type ValidationError struct {
	Status int          `json:"status" yaml:"status"`
	Fields []FieldError `json:"fields" yaml:"fields"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed (status: %d)", e.Status)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.Field+": "+strings.Join(field.Messages, "; "))
	}

	return fmt.Sprintf("validation failed (status: %d): %s", e.Status, strings.Join(parts, ", "))
}

// FieldMap returns the field errors keyed by field name, for callers that
// want to bind messages back onto individual inputs.
func (e *ValidationError) FieldMap() map[string][]string {
	result := make(map[string][]string, len(e.Fields))
	for _, field := range e.Fields {
		result[field.Field] = field.Messages
	}

	return result
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrMissingPathParam    = errors.New("missing path parameter")
	ErrIDRequired          = errors.New("id is required")
	ErrNoFilesProvided     = errors.New("no files provided")
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrCacheKeyNotFound    = errors.New("key not found")
	ErrCacheEntryExpired   = errors.New("cache entry expired")
	ErrCacheDisabled       = errors.New("cache disabled")
	ErrCacheValueTooLarge  = errors.New("cache value too large")
	ErrUnsupportedCache    = errors.New("unsupported cache type")
	ErrNATSConfigRequired  = errors.New("NATS configuration required for NATS cache")
)

// IsNotFound checks whether the error is a "not found" failure.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == 404
	}

	return false
}

// IsValidation checks whether the error carries field-level validation
// messages.
func IsValidation(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

// AsAPIError extracts the APIError from an error chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// errorEnvelope mirrors the body the server sends on failures. Message is a
// plain string for simple errors or a list of field->messages records for
// validation failures.
type errorEnvelope struct {
	Message    json.RawMessage        `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// ParseErrorBody normalizes a failed response into one of the two structured
// error shapes. It never returns nil: an unparseable body collapses into a
// generic APIError with status 400.
func ParseErrorBody(status int, body []byte) error {
	var envelope errorEnvelope

	err := json.Unmarshal(body, &envelope)
	if err != nil || len(envelope.Message) == 0 {
		return &APIError{Message: GenericErrorMessage, Status: constants.HTTPStatusBadRequest}
	}

	var message string
	if json.Unmarshal(envelope.Message, &message) == nil {
		return &APIError{Message: message, Status: status, Data: envelope.Data}
	}

	var fieldMaps []map[string][]string
	if json.Unmarshal(envelope.Message, &fieldMaps) == nil {
		fields := make([]FieldError, 0, len(fieldMaps))

		for _, fieldMap := range fieldMaps {
			names := make([]string, 0, len(fieldMap))
			for name := range fieldMap {
				names = append(names, name)
			}

			sort.Strings(names)

			for _, name := range names {
				fields = append(fields, FieldError{Field: name, Messages: fieldMap[name]})
			}
		}

		return &ValidationError{Status: status, Fields: fields}
	}

	return &APIError{Message: GenericErrorMessage, Status: constants.HTTPStatusBadRequest}
}
