package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/validation"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool                    `json:"success"`
	Data      interface{}             `json:"data,omitempty"`
	Message   string                  `json:"message,omitempty"`
	Error     string                  `json:"error,omitempty"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
	RequestID string                  `json:"request_id,omitempty"`
}

// RequestID returns the id assigned by the RequestID middleware.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Data:      data,
		Message:   message,
		RequestID: RequestID(c),
	})
}

// Error sends an error response. kind is the short error class, e.g. "Not found".
func Error(c *gin.Context, code int, kind, message string, fields []validation.FieldError) {
	c.JSON(code, Response{
		Success:   false,
		Error:     kind,
		Message:   message,
		Errors:    fields,
		RequestID: RequestID(c),
	})
}

// AbortWithError writes the envelope for err and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}
	Error(c, appErr.Code, appErr.Kind, appErr.Message, appErr.Errors)
	c.Abort()
}

// Status returns the HTTP status err would be rendered with.
func Status(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
