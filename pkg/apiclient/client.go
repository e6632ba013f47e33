// Package apiclient talks to the portfolio REST API. It unwraps the response
// envelope, retries transient failures with exponential backoff and reports
// failures as *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"portfolio-backend/pkg/logger"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultAttempts  = 3
	DefaultBaseDelay = 500 * time.Millisecond
	DefaultMaxDelay  = 5 * time.Second
)

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

type Options struct {
	// Timeout bounds a single attempt, not the whole call
	Timeout time.Duration
	// Attempts is the total number of tries, including the first
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	HTTP      *http.Client
	Wait      WaitFunc
}

func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		Attempts:  DefaultAttempts,
		BaseDelay: DefaultBaseDelay,
		MaxDelay:  DefaultMaxDelay,
	}
}

type Client struct {
	baseURL string
	opts    Options

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts Options) *Client {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = def.Attempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = def.BaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = def.MaxDelay
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{}
	}
	if opts.Wait == nil {
		opts.Wait = wait
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), opts: opts}
}

// NewDisplayClient returns the client used by the public site: same codec,
// one attempt.
func NewDisplayClient(baseURL string) *Client {
	opts := DefaultOptions()
	opts.Attempts = 1
	return New(baseURL, opts)
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// backoff returns the delay before retry k (k starts at 1).
func (c *Client) backoff(k int) time.Duration {
	d := c.opts.BaseDelay
	for i := 1; i < k; i++ {
		d *= 2
		if d >= c.opts.MaxDelay {
			return c.opts.MaxDelay
		}
	}
	if d > c.opts.MaxDelay {
		return c.opts.MaxDelay
	}
	return d
}

// Do sends one logical request. body is JSON-encoded when non-nil; out
// receives the unwrapped data when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("apiclient: encode body: %w", err)
		}
	}

	url := c.baseURL + path
	for attempt := 1; ; attempt++ {
		raw, err := c.attempt(ctx, method, url, payload)
		if err == nil {
			return decodeData(raw, out)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt >= c.opts.Attempts {
			return err
		}

		delay := c.backoff(attempt)
		logger.Log.Debug("retrying request",
			"method", method,
			"path", path,
			"attempt", attempt,
			"delay", delay.String(),
			"error", err,
		)
		if err := c.opts.Wait(ctx, delay); err != nil {
			return err
		}
	}
}

func (c *Client) attempt(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.opts.HTTP.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeError(resp.StatusCode, raw)
	}
	return raw, nil
}

func transportError(attemptCtx context.Context, err error) error {
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &APIError{StatusCode: http.StatusRequestTimeout, Message: "Request timeout", Err: err}
	}
	return &APIError{Message: "Network error", Err: err}
}

// decodeData stores the envelope's data in out. Bodies that are not an
// envelope are decoded as they are.
func decodeData(raw []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err == nil {
		if _, ok := env["success"]; ok {
			if data, ok := env["data"]; ok {
				raw = data
			}
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
