package apperror

import (
	"errors"
	"net/http"

	"portfolio-backend/pkg/validation"
)

// Short error labels carried in the envelope's "error" field.
const (
	KindBadRequest      = "Bad request"
	KindValidation      = "Validation failed"
	KindInvalidID       = "Invalid ID"
	KindUnauthorized    = "Unauthorized"
	KindNotFound        = "Not found"
	KindConflict        = "Conflict"
	KindTooManyRequests = "Too many requests"
	KindUnavailable     = "Service unavailable"
	KindServer          = "Server error"
)

type AppError struct {
	Code    int                     `json:"code"`
	Kind    string                  `json:"error"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
	Err     error                   `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

// Validation builds the 400 carrying per-field errors.
func Validation(fields []validation.FieldError) *AppError {
	e := New(http.StatusBadRequest, KindValidation, "Validation failed", nil)
	e.Errors = fields
	if len(fields) > 0 {
		e.Message = fields[0].Message
	}
	return e
}

func InvalidID() *AppError {
	return New(http.StatusBadRequest, KindInvalidID, "Invalid ID format", nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string, err error) *AppError {
	return New(http.StatusConflict, KindConflict, message, err)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindTooManyRequests, message, nil)
}

func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, KindUnavailable, message, err)
}

// Internal keeps the underlying message visible to the admin client.
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindServer, err.Error(), err)
}

// From returns err as an *AppError, wrapping anything else as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
