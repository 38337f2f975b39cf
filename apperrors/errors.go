package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a 422 response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Error represents an application error
type Error struct {
	Code    int
	Message string
	Details []FieldError
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Body is the JSON payload rendered for the error. Validation failures carry
// their field list under "detail", everything else a plain string.
func (e *Error) Body() map[string]any {
	if len(e.Details) > 0 {
		return map[string]any{"detail": e.Details}
	}
	return map[string]any{"detail": e.Message}
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds the 404 for a resource, e.g. NotFound("Product").
func NotFound(resource string) *Error {
	return New(http.StatusNotFound, resource+" not found", nil)
}

// InvalidID reports a path identifier that is not a valid ObjectID.
func InvalidID(resource string, err error) *Error {
	return New(http.StatusBadRequest, "invalid "+strings.ToLower(resource)+" id", err)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// Field builds a single-field validation error.
func Field(field, message string) *Error {
	return &Error{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation error",
		Details: []FieldError{{Field: field, Message: message}},
	}
}

// Validation converts a binding/decoding failure into a 422 with
// field-level detail.
func Validation(err error) *Error {
	appErr := &Error{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation error",
		Err:     err,
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			appErr.Details = append(appErr.Details, FieldError{
				Field:   fieldPath(fe),
				Message: describe(fe),
				Tag:     fe.Tag(),
			})
		}
		return appErr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		appErr.Details = []FieldError{{
			Field:   jsonPath(typeErr.Field),
			Message: fmt.Sprintf("must be of type %s", typeErr.Type),
			Tag:     "type",
		}}
		return appErr
	}

	appErr.Details = []FieldError{{Field: "body", Message: err.Error(), Tag: "parse"}}
	return appErr
}

// fieldPath is the leaf name; embedded DTO structs would otherwise leak
// their Go type name into the namespace.
func fieldPath(fe validator.FieldError) string {
	return fe.Field()
}

// jsonPath drops the leading segments encoding/json adds for embedded
// structs ("ProductFields.price" becomes "price"). Every DTO is flat.
func jsonPath(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "notblank":
		return "must not be blank"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
