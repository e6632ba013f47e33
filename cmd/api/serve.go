package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.IsLocal())
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "env", cfg.AppEnv)

	// 3. Setup Store (connects lazily on first use)
	store, err := repository.Open(cfg.DBUrl, cfg.DBName)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Log.Error("Failed to close database", "error", err)
		}
	}()
	logger.Log.Info("Database configured", "backend", store.Backend)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Migrate(migrateCtx); err != nil {
		// the connector retries on the next request
		logger.Log.Warn("Schema setup failed", "error", err)
	}
	cancelMigrate()

	// 4. Setup Cache
	sharedCache, redisClient := setupCache(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	var sender email.Sender
	if emailService.IsConfigured() {
		sender = emailService
	} else {
		logger.Log.Warn("Email service not fully configured - message notifications disabled")
	}
	dispatcher := email.NewDispatcher(sender, email.DefaultDispatcherOptions())
	notifier := email.NewNotifier(emailService, dispatcher)

	// 6. Setup Security
	secLog := security.NewSecurityLogger("portfolio-backend", cfg.AppEnv)
	defer secLog.Sync()

	if cfg.SessionSecret == "" {
		logger.Log.Warn("SESSION_SECRET not set - using a random secret, sessions end on restart")
	}
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}
	tracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, sharedCache, secLog)

	// 7. Setup UseCases
	validate := validation.New()
	listCache := usecase.ListCache{Store: sharedCache, TTL: cfg.CacheTTL}

	aboutUC := usecase.NewAboutUsecase(store.About, validate, listCache)
	projectUC := usecase.NewProjectUsecase(store.Projects, validate, listCache)
	skillUC := usecase.NewSkillUsecase(store.Skills, validate, listCache)
	experienceUC := usecase.NewExperienceUsecase(store.Experience, validate, listCache)
	educationUC := usecase.NewEducationUsecase(store.Education, validate, listCache)
	messageUC := usecase.NewMessageUsecase(store.Messages, validate, notifier)
	authUC := usecase.NewAuthUsecase(usecase.AdminCredentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, sessions, tracker, secLog, validate)

	probes := map[string]usecase.Probe{"database": store.Ping}
	if redisClient != nil {
		probes["cache"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(probes)

	// 8. Setup Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics(reg)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AboutUC:        aboutUC,
		ProjectUC:      projectUC,
		SkillUC:        skillUC,
		ExperienceUC:   experienceUC,
		EducationUC:    educationUC,
		MessageUC:      messageUC,
		AuthUC:         authUC,
		HealthUC:       healthUC,
		RateLimitStore: sharedCache,
		SecurityLogger: secLog,
		Metrics:        httpMetrics,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := dispatcher.Close(ctx); err != nil {
		logger.Log.Warn("Email queue not drained", "error", err)
	}

	stats := dispatcher.Stats()
	logger.Log.Info("Server exiting",
		"emails_sent", stats.Sent,
		"emails_dead_lettered", stats.DeadLettered,
		"emails_dropped", stats.Dropped,
	)
	return nil
}

// setupCache prefers Redis and falls back to the in-process cache when
// REDIS_URL is unset or unreachable.
func setupCache(cfg *config.Config) (cache.Cache, *goredis.Client) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryCache(time.Minute), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable - using in-memory cache", "error", err)
		return cache.NewMemoryCache(time.Minute), nil
	}
	logger.Log.Info("Redis connected")
	return cache.NewRedisCache(client, "portfolio:"), client
}
