package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"
)

func newAuthUsecase(t *testing.T, creds usecase.AdminCredentials) domain.AuthUsecase {
	t.Helper()
	sessions, err := auth.NewSessionManager("test-secret", time.Hour)
	require.NoError(t, err)

	cfg := security.DefaultLoginTrackerConfig()
	cfg.MaxAttempts = 3
	tracker := security.NewLoginTracker(cfg, cache.NewMemoryCache(time.Minute), security.NopLogger())

	return usecase.NewAuthUsecase(creds, sessions, tracker, security.NopLogger(), validation.New())
}

func TestAuthUsecase(t *testing.T) {
	ctx := context.Background()
	meta := domain.LoginMeta{IP: "10.0.0.1", UserAgent: "go-test", RequestID: "req-1"}
	creds := usecase.AdminCredentials{Username: "admin", Password: "s3cret"}

	t.Run("Should issue a session for valid credentials", func(t *testing.T) {
		uc := newAuthUsecase(t, creds)

		session, err := uc.Login(ctx, &domain.LoginRequest{Username: " Admin ", Password: "s3cret"}, meta)
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "admin", session.Username)
		assert.True(t, session.ExpiresAt.After(time.Now()))

		username, err := uc.Authenticate(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", username)
	})

	t.Run("Should accept a bcrypt hash", func(t *testing.T) {
		hash, err := auth.HashPassword("hashed-pass")
		require.NoError(t, err)
		uc := newAuthUsecase(t, usecase.AdminCredentials{Username: "admin", PasswordHash: hash})

		_, err = uc.Login(ctx, &domain.LoginRequest{Username: "admin", Password: "hashed-pass"}, meta)
		assert.NoError(t, err)
	})

	t.Run("Should reject wrong credentials with 401", func(t *testing.T) {
		uc := newAuthUsecase(t, creds)

		_, err := uc.Login(ctx, &domain.LoginRequest{Username: "admin", Password: "nope"}, meta)
		ae := appErr(t, err)
		assert.Equal(t, http.StatusUnauthorized, ae.Code)
		assert.Equal(t, "Invalid username or password", ae.Message)
	})

	t.Run("Should lock out after repeated failures", func(t *testing.T) {
		uc := newAuthUsecase(t, creds)
		for i := 0; i < 3; i++ {
			_, err := uc.Login(ctx, &domain.LoginRequest{Username: "admin", Password: "nope"}, meta)
			require.Error(t, err)
		}

		_, err := uc.Login(ctx, &domain.LoginRequest{Username: "admin", Password: "s3cret"}, meta)
		assert.Equal(t, http.StatusTooManyRequests, appErr(t, err).Code)
	})

	t.Run("Should return 503 when no admin is configured", func(t *testing.T) {
		uc := newAuthUsecase(t, usecase.AdminCredentials{})

		_, err := uc.Login(ctx, &domain.LoginRequest{Username: "admin", Password: "x"}, meta)
		assert.Equal(t, http.StatusServiceUnavailable, appErr(t, err).Code)
	})

	t.Run("Should validate the login body", func(t *testing.T) {
		uc := newAuthUsecase(t, creds)

		_, err := uc.Login(ctx, &domain.LoginRequest{}, meta)
		assert.Equal(t, apperror.KindValidation, appErr(t, err).Kind)
	})

	t.Run("Should reject a tampered token", func(t *testing.T) {
		uc := newAuthUsecase(t, creds)

		_, err := uc.Authenticate(ctx, "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, appErr(t, err).Code)
	})
}

func TestMessageExport(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.Message{
		{ID: knownID, Name: "Ann", Email: "ann@example.com", Subject: "Hi", Content: "Hello, there", CreatedAt: created},
	}

	repo := new(MockMessageRepo)
	repo.On("List", ctx, domain.MessageQuery{ListQuery: domain.DefaultListQuery()}).Return(items, int64(1), nil)
	uc := usecase.NewMessageUsecase(repo, validation.New(), nil)

	t.Run("Should export csv", func(t *testing.T) {
		file, err := uc.Export(ctx, usecase.ExportFormatCSV)
		require.NoError(t, err)
		assert.Contains(t, file.Filename, ".csv")

		rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "NAME", rows[0][1])
		assert.Equal(t, []string{"2025-03-01T12:00:00Z", "Ann", "ann@example.com", "Hi", "Hello, there", "false"}, rows[1])
	})

	t.Run("Should export xlsx", func(t *testing.T) {
		file, err := uc.Export(ctx, usecase.ExportFormatXLSX)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer f.Close()

		name, err := f.GetCellValue("Messages", "B2")
		require.NoError(t, err)
		assert.Equal(t, "Ann", name)
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, err := uc.Export(ctx, "pdf")
		assert.Equal(t, http.StatusBadRequest, appErr(t, err).Code)
	})
}

func TestHealthUsecase(t *testing.T) {
	t.Run("Should report degraded when a probe fails", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.Probe{
			"database": func(context.Context) error { return nil },
			"cache":    func(context.Context) error { return errors.New("refused") },
		})

		status, healthy := uc.Check(context.Background())
		assert.False(t, healthy)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "up", status["database"])
		assert.Equal(t, "down: refused", status["cache"])
	})

	t.Run("Should report ok without probes", func(t *testing.T) {
		status, healthy := usecase.NewHealthUsecase(nil).Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, "ok", status["status"])
	})
}
