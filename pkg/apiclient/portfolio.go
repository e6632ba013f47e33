package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"portfolio-backend/internal/domain"
)

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Login exchanges admin credentials for a session and uses its token for
// the calls that follow.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	var session domain.Session
	req := domain.LoginRequest{Username: username, Password: password}
	if err := c.Post(ctx, "/api/auth/login", req, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

func (c *Client) About(ctx context.Context) ([]domain.About, error) {
	var items []domain.About
	return items, c.Get(ctx, "/api/about", &items)
}

func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	var items []domain.Project
	return items, c.Get(ctx, "/api/projects", &items)
}

func (c *Client) Project(ctx context.Context, id string) (*domain.Project, error) {
	var item domain.Project
	if err := c.Get(ctx, "/api/projects/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Skills(ctx context.Context) ([]domain.Skill, error) {
	var items []domain.Skill
	return items, c.Get(ctx, "/api/skills", &items)
}

func (c *Client) Experience(ctx context.Context) ([]domain.Experience, error) {
	var items []domain.Experience
	return items, c.Get(ctx, "/api/experience", &items)
}

func (c *Client) Education(ctx context.Context) ([]domain.Education, error) {
	var items []domain.Education
	return items, c.Get(ctx, "/api/education", &items)
}

func (c *Client) SendMessage(ctx context.Context, req domain.CreateMessageRequest) (*domain.Message, error) {
	var msg domain.Message
	if err := c.Post(ctx, "/api/messages", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) UnreadSummary(ctx context.Context) (*domain.UnreadSummary, error) {
	var summary domain.UnreadSummary
	if err := c.Get(ctx, "/api/messages/unread-summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) (*domain.Message, error) {
	var msg domain.Message
	read := true
	if err := c.Patch(ctx, "/api/messages/"+url.PathEscape(id), domain.MarkReadRequest{Read: &read}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkManyRead marks ids as read, or every unread message when ids is empty.
func (c *Client) MarkManyRead(ctx context.Context, ids []string) (int64, error) {
	var result domain.MarkReadResult
	if err := c.Patch(ctx, "/api/messages/mark-as-read", domain.MarkManyReadRequest{IDs: ids}, &result); err != nil {
		return 0, err
	}
	return result.Updated, nil
}
