package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-backend/pkg/cache"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block (default: 5)
	AttemptWindow time.Duration // Time window for tracking attempts (default: 15min)
	BlockDuration time.Duration // How long to block after max attempts (default: 15min)
	UseIPTracking bool          // Also block the source IP (default: true)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker tracks failed admin logins and enforces temporary blocks
type LoginTracker struct {
	config LoginTrackerConfig
	store  cache.Cache
	logger *SecurityLogger
}

func NewLoginTracker(config LoginTrackerConfig, store cache.Cache, logger *SecurityLogger) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = DefaultLoginTrackerConfig().AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = DefaultLoginTrackerConfig().BlockDuration
	}
	return &LoginTracker{config: config, store: store, logger: logger}
}

// Key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	blockedLoginUserPrefix = "blocked:login:user:"
	blockedLoginIPPrefix   = "blocked:login:ip:"
)

// IsBlocked checks if the given username or IP is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, username, ip string) (bool, error) {
	var flag bool
	found, err := lt.store.Get(ctx, blockedLoginUserPrefix+normalize(username), &flag)
	if err != nil {
		return false, fmt.Errorf("failed to check user block: %w", err)
	}
	if found {
		return true, nil
	}

	if lt.config.UseIPTracking && ip != "" {
		found, err := lt.store.Get(ctx, blockedLoginIPPrefix+ip, &flag)
		if err != nil {
			return false, fmt.Errorf("failed to check IP block: %w", err)
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// RecordFailedAttempt counts a failure and blocks once MaxAttempts is reached.
// Returns (blocked, currentAttempts, error)
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, username, ip, userAgent, requestID string) (bool, int, error) {
	count, _, err := lt.store.Incr(ctx, failLoginUserPrefix+normalize(username), lt.config.AttemptWindow)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment user counter: %w", err)
	}

	lt.logger.LogLoginFailed(ctx, username, ip, userAgent, requestID, "invalid_credentials")

	if int(count) >= lt.config.MaxAttempts {
		if err := lt.createBlock(ctx, username, ip, requestID); err != nil {
			return true, int(count), fmt.Errorf("failed to create block: %w", err)
		}
		return true, int(count), nil
	}
	return false, int(count), nil
}

func (lt *LoginTracker) createBlock(ctx context.Context, username, ip, requestID string) error {
	ttl := lt.config.BlockDuration

	if err := lt.store.Set(ctx, blockedLoginUserPrefix+normalize(username), true, ttl); err != nil {
		return fmt.Errorf("failed to set user block: %w", err)
	}
	if lt.config.UseIPTracking && ip != "" {
		// user is already blocked; the IP block is best effort
		_ = lt.store.Set(ctx, blockedLoginIPPrefix+ip, true, ttl)
	}

	lt.logger.LogBlockCreated(ctx, username, ip, requestID, int(ttl.Minutes()))
	return nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, username string) error {
	if err := lt.store.Delete(ctx, failLoginUserPrefix+normalize(username)); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}
	return nil
}

// BlockDuration is reported to clients in the lockout message.
func (lt *LoginTracker) BlockDuration() time.Duration {
	return lt.config.BlockDuration
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
