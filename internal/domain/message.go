package domain

import (
	"context"
	"time"
)

// Message is a contact-form submission. Read only ever moves from false to true.
type Message struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Content   string    `json:"content" bson:"content"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// DefaultMessageSubject fills in submissions sent without a subject.
const DefaultMessageSubject = "New message from your website"

type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Content string `json:"content" validate:"required,max=5000"`
}

func (r *CreateMessageRequest) Normalize() {
	trim(&r.Name)
	lower(&r.Email)
	trim(&r.Subject)
	trim(&r.Content)
}

func (r *CreateMessageRequest) Entity() *Message {
	subject := r.Subject
	if subject == "" {
		subject = DefaultMessageSubject
	}
	return &Message{
		Name:    r.Name,
		Email:   r.Email,
		Subject: subject,
		Content: r.Content,
	}
}

// MarkReadRequest is the body of PATCH /messages/:id. An absent body means read=true.
type MarkReadRequest struct {
	Read *bool `json:"read"`
}

// MarkManyReadRequest targets specific ids, or every unread message when empty.
type MarkManyReadRequest struct {
	IDs []string `json:"ids"`
}

// MarkReadResult reports how many messages changed state.
type MarkReadResult struct {
	Updated int64 `json:"updated"`
}

// MessageList is one page of the inbox.
type MessageList struct {
	Items []Message `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type UnreadCount struct {
	UnreadCount int64 `json:"unreadCount"`
}

// UnreadSummary backs the notification widget.
type UnreadSummary struct {
	UnreadCount    int64     `json:"unreadCount"`
	LatestMessages []Message `json:"latestMessages"`
}

// UnreadSummaryLimit is how many recent unread messages the summary carries.
const UnreadSummaryLimit = 5

// ExportFile is a rendered inbox export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	// List returns the requested page and the total matching q's filters.
	List(ctx context.Context, q MessageQuery) ([]Message, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	LatestUnread(ctx context.Context, limit int) ([]Message, error)
	// MarkRead flips the given ids to read and returns how many changed.
	MarkRead(ctx context.Context, ids []string) (int64, error)
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type MessageUsecase interface {
	Submit(ctx context.Context, req *CreateMessageRequest) (*Message, error)
	List(ctx context.Context, q MessageQuery) (*MessageList, error)
	CountUnread(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (*Message, error)
	Delete(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string, req *MarkReadRequest) (*Message, error)
	MarkManyRead(ctx context.Context, req *MarkManyReadRequest) (*MarkReadResult, error)
	UnreadSummary(ctx context.Context) (*UnreadSummary, error)
	Export(ctx context.Context, format string) (*ExportFile, error)
}
