package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Unexpected errors become 500 "Server error" carrying the underlying message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}
		if appErr.Code >= 500 {
			logger.Log.Error("Request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", response.RequestID(c),
				"error", err,
			)
		}
		response.Error(c, appErr.Code, appErr.Kind, appErr.Message, appErr.Errors)
	}
}
