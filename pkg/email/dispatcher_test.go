package email_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/config"
	"portfolio-backend/pkg/email"
)

type fakeSender struct {
	mu       sync.Mutex
	failures int // fail this many calls before succeeding
	calls    int
	sent     []email.Mail
	block    chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, m email.Mail) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeSender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func fastOptions() email.DispatcherOptions {
	return email.DispatcherOptions{QueueSize: 4, MaxAttempts: 3, BaseDelay: time.Millisecond, SendTimeout: time.Second}
}

func TestDispatcher(t *testing.T) {
	t.Run("Should deliver queued mail and drain on close", func(t *testing.T) {
		sender := &fakeSender{}
		d := email.NewDispatcher(sender, fastOptions())

		assert.True(t, d.Enqueue(email.Mail{To: "a@example.com", Subject: "one"}))
		assert.True(t, d.Enqueue(email.Mail{To: "a@example.com", Subject: "two"}))
		require.NoError(t, d.Close(context.Background()))

		assert.Len(t, sender.sent, 2)
		assert.Equal(t, int64(2), d.Stats().Sent)
	})

	t.Run("Should retry transient failures", func(t *testing.T) {
		sender := &fakeSender{failures: 2}
		d := email.NewDispatcher(sender, fastOptions())

		d.Enqueue(email.Mail{Subject: "retry"})
		require.NoError(t, d.Close(context.Background()))

		assert.Equal(t, 3, sender.Calls())
		assert.Equal(t, int64(1), d.Stats().Sent)
		assert.Equal(t, int64(0), d.Stats().DeadLettered)
	})

	t.Run("Should dead-letter after the last attempt", func(t *testing.T) {
		sender := &fakeSender{failures: 10}
		d := email.NewDispatcher(sender, fastOptions())

		d.Enqueue(email.Mail{Subject: "doomed"})
		require.NoError(t, d.Close(context.Background()))

		assert.Equal(t, 3, sender.Calls())
		assert.Equal(t, int64(1), d.Stats().DeadLettered)
	})

	t.Run("Should drop mail when the queue is full", func(t *testing.T) {
		sender := &fakeSender{block: make(chan struct{})}
		opts := fastOptions()
		opts.QueueSize = 1
		d := email.NewDispatcher(sender, opts)

		// first is picked up by the worker and blocks, second fills the queue
		require.True(t, d.Enqueue(email.Mail{Subject: "1"}))
		require.Eventually(t, func() bool {
			return d.Enqueue(email.Mail{Subject: "2"})
		}, time.Second, time.Millisecond)
		assert.False(t, d.Enqueue(email.Mail{Subject: "3"}))

		close(sender.block)
		require.NoError(t, d.Close(context.Background()))
		assert.GreaterOrEqual(t, d.Stats().Dropped, int64(1))
	})

	t.Run("Should refuse mail after close", func(t *testing.T) {
		d := email.NewDispatcher(&fakeSender{}, fastOptions())
		require.NoError(t, d.Close(context.Background()))
		assert.False(t, d.Enqueue(email.Mail{}))
	})

	t.Run("Should give up on pending mail when the close deadline passes", func(t *testing.T) {
		sender := &fakeSender{block: make(chan struct{})}
		d := email.NewDispatcher(sender, fastOptions())
		d.Enqueue(email.Mail{Subject: "stuck"})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := d.Close(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int64(1), d.Stats().DeadLettered)
	})

	t.Run("Should be disabled without a sender", func(t *testing.T) {
		d := email.NewDispatcher(nil, fastOptions())
		assert.False(t, d.Enabled())
		assert.False(t, d.Enqueue(email.Mail{}))
		assert.NoError(t, d.Close(context.Background()))
	})
}

func TestNotifier(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "me@example.com",
		SMTPPassword:   "pw",
		SMTPFromEmail:  "me@example.com",
		ContactEmailTo: "inbox@example.com",
	}

	t.Run("Should render and queue a notification with the default subject", func(t *testing.T) {
		sender := &fakeSender{}
		d := email.NewDispatcher(sender, fastOptions())
		n := email.NewNotifier(email.NewEmailService(cfg), d)

		ok := n.NotifyNewMessage(email.MessageEmailData{
			SenderName:  "Ann",
			SenderEmail: "ann@example.com",
			Content:     "<b>hi</b>",
		})
		require.True(t, ok)
		require.NoError(t, d.Close(context.Background()))

		require.Len(t, sender.sent, 1)
		m := sender.sent[0]
		assert.Equal(t, "inbox@example.com", m.To)
		assert.Equal(t, "ann@example.com", m.ReplyTo)
		assert.Equal(t, email.DefaultSubject, m.Subject)
		assert.Contains(t, m.HTML, "&lt;b&gt;hi&lt;/b&gt;")
	})

	t.Run("Should not queue when delivery is disabled", func(t *testing.T) {
		n := email.NewNotifier(email.NewEmailService(cfg), email.NewDispatcher(nil, fastOptions()))
		assert.False(t, n.NotifyNewMessage(email.MessageEmailData{SenderName: "Ann"}))
	})
}

func TestMailMIME(t *testing.T) {
	t.Run("Should encode non-ASCII subjects", func(t *testing.T) {
		m := email.Mail{To: "inbox@example.com", Subject: "Xin chào", HTML: "<p>hi</p>"}

		raw := string(m.MIME("site@example.com"))
		assert.Contains(t, raw, "Subject: =?utf-8?q?Xin_ch=C3=A0o?=\r\n")
		assert.Contains(t, raw, "To: inbox@example.com\r\n")
		assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>"))
	})

	t.Run("Should keep ASCII subjects readable", func(t *testing.T) {
		m := email.Mail{To: "inbox@example.com", Subject: "Hello\r\nBcc: x@example.com"}

		raw := string(m.MIME("site@example.com"))
		assert.Contains(t, raw, "Subject: Hello  Bcc: x@example.com\r\n")
		assert.NotContains(t, raw, "\r\nBcc:")
	})
}
