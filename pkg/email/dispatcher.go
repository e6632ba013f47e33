package email

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"portfolio-backend/pkg/logger"
)

// DispatcherOptions tunes the async delivery queue.
type DispatcherOptions struct {
	QueueSize   int
	MaxAttempts int
	BaseDelay   time.Duration // doubled after each failed attempt
	SendTimeout time.Duration
	Logger      *slog.Logger
}

func DefaultDispatcherOptions() DispatcherOptions {
	return DispatcherOptions{
		QueueSize:   100,
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		SendTimeout: 30 * time.Second,
	}
}

// Stats counts delivery outcomes since start.
type Stats struct {
	Sent         int64
	DeadLettered int64
	Dropped      int64
}

// Dispatcher delivers mail in the background with bounded retries. Mail that
// exhausts its attempts is logged as dead-lettered.
type Dispatcher struct {
	sender Sender
	opts   DispatcherOptions
	log    *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Mail

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	sent, deadLettered, dropped atomic.Int64
}

// NewDispatcher starts the worker. A nil sender yields a disabled dispatcher
// that refuses every message.
func NewDispatcher(sender Sender, opts DispatcherOptions) *Dispatcher {
	def := DefaultDispatcherOptions()
	if opts.QueueSize <= 0 {
		opts.QueueSize = def.QueueSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = def.BaseDelay
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = def.SendTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.Log
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sender: sender,
		opts:   opts,
		log:    log.With("component", "email_dispatcher"),
		queue:  make(chan Mail, opts.QueueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	if sender == nil {
		d.closed = true
		close(d.done)
		return d
	}
	go d.run()
	return d
}

// Enabled reports whether mail is being delivered at all.
func (d *Dispatcher) Enabled() bool {
	return d.sender != nil
}

// Enqueue never blocks. It returns false when the mail was not accepted.
func (d *Dispatcher) Enqueue(m Mail) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		if d.sender != nil {
			d.log.Warn("email dropped, dispatcher closed", "to", m.To, "subject", m.Subject)
			d.dropped.Add(1)
		}
		return false
	}

	select {
	case d.queue <- m:
		return true
	default:
		d.dropped.Add(1)
		d.log.Error("email dropped, queue full", "to", m.To, "subject", m.Subject, "queue_size", d.opts.QueueSize)
		return false
	}
}

// Close stops accepting mail and waits for the queue to drain. When ctx
// expires first, pending retries are abandoned and dead-lettered.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Sent:         d.sent.Load(),
		DeadLettered: d.deadLettered.Load(),
		Dropped:      d.dropped.Load(),
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for m := range d.queue {
		d.deliver(m)
	}
}

func (d *Dispatcher) deliver(m Mail) {
	var lastErr error
	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		if d.ctx.Err() != nil {
			lastErr = errors.Join(lastErr, d.ctx.Err())
			break
		}

		sendCtx, cancel := context.WithTimeout(d.ctx, d.opts.SendTimeout)
		err := d.sender.Send(sendCtx, m)
		cancel()
		if err == nil {
			d.sent.Add(1)
			d.log.Debug("email sent", "to", m.To, "attempt", attempt)
			return
		}
		lastErr = err
		d.log.Warn("email attempt failed", "to", m.To, "attempt", attempt, "error", err)

		if attempt < d.opts.MaxAttempts {
			delay := d.opts.BaseDelay << (attempt - 1)
			if !sleepCtx(d.ctx, delay) {
				lastErr = errors.Join(lastErr, d.ctx.Err())
				break
			}
		}
	}

	d.deadLettered.Add(1)
	d.log.Error("email dead-lettered",
		"to", m.To,
		"reply_to", m.ReplyTo,
		"subject", m.Subject,
		"attempts", d.opts.MaxAttempts,
		"error", lastErr,
	)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
