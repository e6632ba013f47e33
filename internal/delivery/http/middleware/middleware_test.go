package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/security"
)

// brokenCache fails every counter update.
type brokenCache struct {
	cache.Cache
}

func (brokenCache) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func (brokenCache) Backend() string { return "broken" }

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m := middleware.NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(middleware.Metrics(m))
	r.GET("/api/skills/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/api/skills/a", nil)
	serve(r, http.MethodGet, "/api/skills/b", nil)
	serve(r, http.MethodGet, "/wp-login.php", nil)

	t.Run("Should label by route template", func(t *testing.T) {
		got := testutil.ToFloat64(m.Requests.With(prometheus.Labels{
			"method": "GET", "path": "/api/skills/:id", "status": "2XX", "response_code": "200", "user_agent": "unknown",
		}))
		assert.Equal(t, float64(2), got)
	})

	t.Run("Should group unmatched paths", func(t *testing.T) {
		got := testutil.ToFloat64(m.Requests.With(prometheus.Labels{
			"method": "GET", "path": "unmatched", "status": "4XX", "response_code": "404", "user_agent": "unknown",
		}))
		assert.Equal(t, float64(1), got)
	})

	t.Run("Should observe durations", func(t *testing.T) {
		assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(store cache.Cache, cfg middleware.RateLimitConfig) *gin.Engine {
		r := gin.New()
		r.POST("/limited", middleware.RateLimitMiddleware(store, cfg, security.NopLogger()), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("Should reject requests over the limit", func(t *testing.T) {
		r := newRouter(cache.NewMemoryCache(time.Minute), middleware.ContactRateLimitConfig(2, time.Minute))

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/limited", nil).Code)
		}
		w := serve(r, http.MethodPost, "/limited", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Should let contact requests through when the store fails", func(t *testing.T) {
		r := newRouter(brokenCache{}, middleware.ContactRateLimitConfig(2, time.Minute))
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/limited", nil).Code)
	})

	t.Run("Should refuse logins when the store fails", func(t *testing.T) {
		r := newRouter(brokenCache{}, middleware.LoginRateLimitConfig(2, time.Minute))
		assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodPost, "/limited", nil).Code)
	})

	t.Run("Should be disabled without a store", func(t *testing.T) {
		r := newRouter(nil, middleware.LoginRateLimitConfig(1, time.Minute))
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/limited", nil).Code)
		}
	})
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://me.dev", "https://admin.me.dev/"}))
	r.GET("/api/skills", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should echo an allowed origin", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/api/skills", http.Header{"Origin": {"https://admin.me.dev"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://admin.me.dev", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Should not allow other origins", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/api/skills", http.Header{"Origin": {"https://evil.example"}})
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should answer preflight with 204", func(t *testing.T) {
		w := serve(r, http.MethodOptions, "/api/skills", http.Header{"Origin": {"https://me.dev"}})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should keep the caller's id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/", http.Header{"X-Request-Id": {"abc-123"}})
		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Should generate an id when missing", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/", nil)
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	saved := logger.Log
	logger.Log = slog.New(slog.NewJSONHandler(&logs, nil))
	t.Cleanup(func() { logger.Log = saved })

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/api/skills", func(c *gin.Context) { _ = c.Error(errors.New("db down")) })

	t.Run("Should log server errors with the request id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/api/skills", http.Header{"X-Request-Id": {"req-500"}})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"db down"`)
		assert.Contains(t, logs.String(), `"request_id":"req-500"`)
		assert.Contains(t, logs.String(), `"error":"db down"`)
	})
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(hsts bool) *gin.Engine {
		r := gin.New()
		r.Use(middleware.SecurityHeadersMiddleware(hsts))
		r.GET("/api/skills", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/api/swagger/*any", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("Should harden API responses", func(t *testing.T) {
		w := serve(newRouter(true), http.MethodGet, "/api/skills", nil)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
		assert.Empty(t, w.Header().Get("Cache-Control"))
	})

	t.Run("Should skip HSTS and the swagger policy when asked", func(t *testing.T) {
		w := serve(newRouter(false), http.MethodGet, "/api/swagger/index.html", nil)
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	})

	t.Run("Should disable caching for authenticated requests", func(t *testing.T) {
		w := serve(newRouter(true), http.MethodGet, "/api/skills", http.Header{"Authorization": {"Bearer x"}})
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	})
}
