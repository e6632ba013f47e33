package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level failure, rendered as {field, message}.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator.ValidationErrors to field errors.
// Anything else becomes a single error without a field.
func FormatValidationErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldPath(e)
		out = append(out, FieldError{
			Field:   field,
			Message: formatSingleError(field, e),
		})
	}
	return out
}

// FromDecodeError maps JSON type mismatches to field errors. It returns
// nil for errors that are not about a specific field.
func FromDecodeError(err error) []FieldError {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil
	}
	return []FieldError{{
		Field:   typeErr.Field,
		Message: fmt.Sprintf("%s must be %s", typeErr.Field, describeKind(typeErr.Type)),
	}}
}

// fieldPath drops the struct name from the namespace: "CreateProjectRequest.tech[0]" -> "tech[0]"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func formatSingleError(field string, e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)

	case "min":
		switch e.Kind() {
		case reflect.String:
			if param == "1" {
				return fmt.Sprintf("%s cannot be empty", field)
			}
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at least %s item(s)", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)

	case "max":
		switch e.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at most %s item(s)", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)

	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)

	case "optional_url", "url":
		return fmt.Sprintf("%s must be a valid URL", field)

	case "ym_date":
		return fmt.Sprintf("%s must be in YYYY-MM or YYYY-MM-DD format", field)

	case "end_date":
		return fmt.Sprintf("%s must be in YYYY-MM, YYYY-MM-DD format, or 'Present'", field)

	case "notblank":
		return fmt.Sprintf("%s cannot be blank", field)

	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))

	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Ptr:
		return describeKind(t.Elem())
	default:
		return "a valid value"
	}
}
