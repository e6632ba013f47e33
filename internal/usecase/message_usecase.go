package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"
)

// MessageNotifier queues the notification for a newly stored message.
type MessageNotifier interface {
	NotifyNewMessage(data email.MessageEmailData) bool
}

type messageUsecase struct {
	repo     domain.MessageRepository
	validate *validator.Validate
	notifier MessageNotifier
	exporter *MessageExporter
}

func NewMessageUsecase(repo domain.MessageRepository, validate *validator.Validate, notifier MessageNotifier) domain.MessageUsecase {
	return &messageUsecase{
		repo:     repo,
		validate: validate,
		notifier: notifier,
		exporter: NewMessageExporter(),
	}
}

// Submit stores the message first; the email is queued afterwards and can
// never fail the request.
func (u *messageUsecase) Submit(ctx context.Context, req *domain.CreateMessageRequest) (*domain.Message, error) {
	req.Normalize()
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	msg := req.Entity()
	msg.ID = domain.NewID()
	msg.Read = false
	msg.CreatedAt = nowUTC()

	if err := u.repo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	if u.notifier != nil {
		queued := u.notifier.NotifyNewMessage(email.MessageEmailData{
			SenderName:  msg.Name,
			SenderEmail: msg.Email,
			Subject:     msg.Subject,
			Content:     msg.Content,
			SentAt:      msg.CreatedAt,
		})
		if !queued {
			logger.Log.Warn("new message notification not queued", "message_id", msg.ID)
		}
	}
	return msg, nil
}

func (u *messageUsecase) List(ctx context.Context, q domain.MessageQuery) (*domain.MessageList, error) {
	q.Search = strings.TrimSpace(q.Search)
	items, total, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if items == nil {
		items = []domain.Message{}
	}
	return &domain.MessageList{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *messageUsecase) CountUnread(ctx context.Context) (int64, error) {
	n, err := u.repo.CountUnread(ctx)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (u *messageUsecase) Get(ctx context.Context, id string) (*domain.Message, error) {
	if !domain.ValidID(id) {
		return nil, apperror.InvalidID()
	}
	msg, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return msg, nil
}

func (u *messageUsecase) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return apperror.InvalidID()
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// MarkRead only sets read=true; there is no way back to unread.
func (u *messageUsecase) MarkRead(ctx context.Context, id string, req *domain.MarkReadRequest) (*domain.Message, error) {
	if !domain.ValidID(id) {
		return nil, apperror.InvalidID()
	}
	if req != nil && req.Read != nil && !*req.Read {
		return nil, apperror.BadRequest("Messages cannot be marked as unread")
	}

	if _, err := u.repo.MarkRead(ctx, []string{id}); err != nil {
		return nil, apperror.Internal(err)
	}
	msg, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return msg, nil
}

// MarkManyRead marks the listed ids, ignoring malformed ones, or every
// unread message when no ids are given.
func (u *messageUsecase) MarkManyRead(ctx context.Context, req *domain.MarkManyReadRequest) (*domain.MarkReadResult, error) {
	if req == nil || len(req.IDs) == 0 {
		n, err := u.repo.MarkAllRead(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.MarkReadResult{Updated: n}, nil
	}

	valid := make([]string, 0, len(req.IDs))
	seen := make(map[string]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		id = strings.TrimSpace(id)
		if !domain.ValidID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}
	if len(valid) == 0 {
		return nil, apperror.New(http.StatusBadRequest, apperror.KindInvalidID, "No valid message ids provided", nil)
	}

	n, err := u.repo.MarkRead(ctx, valid)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.MarkReadResult{Updated: n}, nil
}

// UnreadSummary fetches the count and the latest unread messages concurrently.
func (u *messageUsecase) UnreadSummary(ctx context.Context) (*domain.UnreadSummary, error) {
	var (
		count  int64
		latest []domain.Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := u.repo.CountUnread(gctx)
		if err != nil {
			return fmt.Errorf("count unread: %w", err)
		}
		count = n
		return nil
	})
	g.Go(func() error {
		items, err := u.repo.LatestUnread(gctx, domain.UnreadSummaryLimit)
		if err != nil {
			return fmt.Errorf("latest unread: %w", err)
		}
		latest = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}

	if latest == nil {
		latest = []domain.Message{}
	}
	return &domain.UnreadSummary{UnreadCount: count, LatestMessages: latest}, nil
}

func (u *messageUsecase) Export(ctx context.Context, format string) (*domain.ExportFile, error) {
	q := domain.MessageQuery{ListQuery: domain.DefaultListQuery()}
	items, _, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u.exporter.Export(items, format)
}
