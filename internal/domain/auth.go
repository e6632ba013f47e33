package domain

import (
	"context"
	"time"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

// LoginMeta identifies the caller for lockout tracking and security logs.
type LoginMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthUsecase interface {
	Login(ctx context.Context, req *LoginRequest, meta LoginMeta) (*Session, error)
	// Authenticate verifies a session token and returns the admin username.
	Authenticate(ctx context.Context, token string) (string, error)
}
