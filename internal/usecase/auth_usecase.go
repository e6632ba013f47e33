package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"
)

// AdminCredentials is the single operator account taken from configuration.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

func (c AdminCredentials) Enabled() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

type authUsecase struct {
	creds    AdminCredentials
	sessions *auth.SessionManager
	tracker  *security.LoginTracker
	secLog   *security.SecurityLogger
	validate *validator.Validate
}

func NewAuthUsecase(creds AdminCredentials, sessions *auth.SessionManager, tracker *security.LoginTracker, secLog *security.SecurityLogger, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		creds:    creds,
		sessions: sessions,
		tracker:  tracker,
		secLog:   secLog,
		validate: validate,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *domain.LoginRequest, meta domain.LoginMeta) (*domain.Session, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	if !u.creds.Enabled() {
		return nil, apperror.Unavailable("Admin login is not configured", nil)
	}

	if u.tracker != nil {
		blocked, err := u.tracker.IsBlocked(ctx, req.Username, meta.IP)
		if err != nil {
			// store outage must not lock the owner out
			logger.Log.Warn("login block check failed", "error", err)
		}
		if blocked {
			u.secLog.LogLoginBlocked(ctx, req.Username, meta.IP, meta.UserAgent, meta.RequestID)
			return nil, apperror.TooManyRequests(fmt.Sprintf(
				"Too many failed login attempts. Try again in %d minutes.",
				int(u.tracker.BlockDuration().Minutes()),
			))
		}
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(req.Username)), []byte(strings.ToLower(u.creds.Username))) == 1
	passOK := auth.CheckPassword(req.Password, u.creds.Password, u.creds.PasswordHash)
	if !userOK || !passOK {
		if u.tracker != nil {
			if _, _, err := u.tracker.RecordFailedAttempt(ctx, req.Username, meta.IP, meta.UserAgent, meta.RequestID); err != nil {
				logger.Log.Warn("failed to record login attempt", "error", err)
			}
		} else {
			u.secLog.LogLoginFailed(ctx, req.Username, meta.IP, meta.UserAgent, meta.RequestID, "invalid_credentials")
		}
		return nil, apperror.Unauthorized("Invalid username or password")
	}

	if u.tracker != nil {
		if err := u.tracker.ClearAttempts(ctx, req.Username); err != nil {
			logger.Log.Warn("failed to clear login attempts", "error", err)
		}
	}

	token, expiresAt, err := u.sessions.Issue(u.creds.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.secLog.LogLoginSuccess(ctx, u.creds.Username, meta.IP, meta.UserAgent, meta.RequestID)

	return &domain.Session{Token: token, Username: u.creds.Username, ExpiresAt: expiresAt}, nil
}

func (u *authUsecase) Authenticate(_ context.Context, token string) (string, error) {
	claims, err := u.sessions.Parse(token)
	if err != nil {
		return "", apperror.Unauthorized("Invalid or expired session")
	}
	if !strings.EqualFold(claims.Username, u.creds.Username) {
		return "", apperror.Unauthorized("Invalid or expired session")
	}
	return claims.Username, nil
}
