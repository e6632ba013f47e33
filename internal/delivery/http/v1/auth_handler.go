package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/auth"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	secureCookie bool
}

// NewAuthHandler registers login (guarded by the login limiter), logout
// and the session probe.
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, secureCookie bool, login ...gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC:       authUC,
		secureCookie: secureCookie,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", append(login, handler.Login)...)
		publicAuth.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", handler.Me)
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges the admin credentials for a session token, also set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.Session}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(requireBody(err))
		return
	}

	session, err := h.authUC.Login(c.Request.Context(), &req, domain.LoginMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
	if err != nil {
		c.Error(err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(nowFunc()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, session.Token, maxAge, "/", "", h.secureCookie, true)

	response.Success(c, http.StatusOK, "Logged in", session)
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{
		"username": c.GetString(string(domain.KeyUsername)),
	})
}
