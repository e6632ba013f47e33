package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/security"
)

// TokenFromRequest reads the session token from the Authorization header,
// falling back to the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware admits requests carrying a valid admin session.
func AuthMiddleware(authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			secLog.LogUnauthorized(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath(), "missing_token")
			response.AbortWithError(c, apperror.Unauthorized("Authentication required"))
			return
		}

		username, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			secLog.LogUnauthorized(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath(), "invalid_token")
			response.AbortWithError(c, err)
			return
		}

		c.Set(string(domain.KeyUsername), username)
		c.Next()
	}
}
