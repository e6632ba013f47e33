package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/apperror"
)

var nowFunc = time.Now

type SystemHandler struct {
	healthUC       usecase.HealthUsecase
	mediaCloudName string
}

func NewSystemHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase, mediaCloudName string) {
	handler := &SystemHandler{
		healthUC:       healthUC,
		mediaCloudName: mediaCloudName,
	}

	public.GET("/health", handler.Health)
	public.GET("/config/media", handler.MediaConfig)
}

// Health godoc
// @Summary      Health check
// @Description  Reports the state of the database and cache backends.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Data:      status,
			Error:     apperror.KindUnavailable,
			Message:   "One or more dependencies are unavailable",
			RequestID: response.RequestID(c),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}

// MediaConfig godoc
// @Summary      Media host settings
// @Description  Cloud name used by the admin image upload widget.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /config/media [get]
func (h *SystemHandler) MediaConfig(c *gin.Context) {
	response.Success(c, http.StatusOK, "", gin.H{"cloudName": h.mediaCloudName})
}
