package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/security"
)

type RouterDeps struct {
	AboutUC      domain.AboutUsecase
	ProjectUC    domain.ProjectUsecase
	SkillUC      domain.SkillUsecase
	ExperienceUC domain.ExperienceUsecase
	EducationUC  domain.EducationUsecase
	MessageUC    domain.MessageUsecase
	AuthUC       domain.AuthUsecase
	HealthUC     usecase.HealthUsecase
	// Counter store for the rate limiters; nil disables them
	RateLimitStore cache.Cache
	SecurityLogger *security.SecurityLogger
	// Metrics and MetricsHandler are optional; /metrics is mounted when both are set
	Metrics        *middleware.HTTPMetrics
	MetricsHandler http.Handler
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	secLog := deps.SecurityLogger
	if secLog == nil {
		secLog = security.NopLogger()
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(!deps.Config.IsLocal()))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.ErrorHandler())

	if deps.Metrics != nil && deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := r.Group("/api")

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	contactLimit := middleware.RateLimitMiddleware(deps.RateLimitStore,
		middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window), secLog)
	loginLimit := middleware.RateLimitMiddleware(deps.RateLimitStore,
		middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window), secLog)

	// Public routes
	NewSystemHandler(api, deps.HealthUC, deps.Config.MediaCloudName)

	// Admin routes
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(deps.AuthUC, secLog))
	{
		NewAuthHandler(api, admin, deps.AuthUC, !deps.Config.IsLocal(), loginLimit)
		NewAboutHandler(api, admin, deps.AboutUC)
		NewProjectHandler(api, admin, deps.ProjectUC)
		NewSkillHandler(api, admin, deps.SkillUC)
		NewExperienceHandler(api, admin, deps.ExperienceUC)
		NewEducationHandler(api, admin, deps.EducationUC)
		NewMessageHandler(api, admin, deps.MessageUC, contactLimit)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, apperror.KindNotFound, "Route not found", nil)
	})

	return r
}
