package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a failed call. StatusCode is 0 when no response arrived.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusRequestTimeout || e.StatusCode >= http.StatusInternalServerError
}

func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Error   string       `json:"error"`
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Errors = body.Errors
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
