// Package notification keeps the unread-message badge state for the admin
// inbox by polling the unread summary.
package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
)

const DefaultInterval = 30 * time.Second

type Status int

const (
	// Idle: no fetch in flight and nothing to show
	Idle Status = iota
	Fetching
	// Displaying: the last fetch returned unread messages
	Displaying
)

func (s Status) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Displaying:
		return "displaying"
	default:
		return "idle"
	}
}

// Source is the API the poller reads from. *apiclient.Client satisfies it.
type Source interface {
	UnreadSummary(ctx context.Context) (*domain.UnreadSummary, error)
	MarkManyRead(ctx context.Context, ids []string) (int64, error)
}

type State struct {
	Status      Status
	UnreadCount int64
	Messages    []domain.Message
	UpdatedAt   time.Time
}

func (s State) clone() State {
	s.Messages = append([]domain.Message(nil), s.Messages...)
	return s
}

type Poller struct {
	src      Source
	interval time.Duration
	onChange func(State)

	mu    sync.Mutex
	state State
	// generation changes whenever a poll replaces the state
	generation uint64

	inFlight atomic.Bool
	wg       sync.WaitGroup
}

// NewPoller returns a poller for src. interval <= 0 uses DefaultInterval;
// onChange, when set, receives a copy of every new state.
func NewPoller(src Source, interval time.Duration, onChange func(State)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{src: src, interval: interval, onChange: onChange}
}

// Run fetches immediately and then on every tick until ctx is done. A tick
// that finds a fetch still running is skipped. Run returns once the
// in-flight fetch has finished.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer func() {
		ticker.Stop()
		p.wg.Wait()
	}()

	p.trigger(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.trigger(ctx)
		}
	}
}

func (p *Poller) trigger(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		logger.Log.Debug("unread poll skipped, previous fetch still running")
		return false
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)
		p.Refresh(ctx)
	}()
	return true
}

// Refresh fetches the summary once. Failures reset the state to zero.
func (p *Poller) Refresh(ctx context.Context) {
	p.update(func(s *State) { s.Status = Fetching })

	summary, err := p.src.UnreadSummary(ctx)
	if err != nil {
		logger.Log.Debug("unread poll failed", "error", err)
		summary = &domain.UnreadSummary{}
	}

	p.update(func(s *State) {
		s.UnreadCount = summary.UnreadCount
		s.Messages = append([]domain.Message(nil), summary.LatestMessages...)
		s.UpdatedAt = time.Now()
		s.Status = Idle
		if len(s.Messages) > 0 {
			s.Status = Displaying
		}
		p.generation++
	})
}

// MarkRead removes id from the state before asking the server. If the call
// fails the removal is undone, unless a poll has replaced the state since.
func (p *Poller) MarkRead(ctx context.Context, id string) error {
	var (
		removed     domain.Message
		index       = -1
		gen         uint64
		decremented bool
	)
	p.update(func(s *State) {
		gen = p.generation
		for i, m := range s.Messages {
			if m.ID == id {
				removed, index = m, i
				s.Messages = append(s.Messages[:i:i], s.Messages[i+1:]...)
				break
			}
		}
		if s.UnreadCount > 0 {
			s.UnreadCount--
			decremented = true
		}
		if len(s.Messages) == 0 {
			s.Status = Idle
		}
	})

	if _, err := p.src.MarkManyRead(ctx, []string{id}); err != nil {
		p.update(func(s *State) {
			if p.generation != gen {
				return
			}
			if decremented {
				s.UnreadCount++
			}
			if index >= 0 {
				s.Status = Displaying
				if index > len(s.Messages) {
					index = len(s.Messages)
				}
				s.Messages = append(s.Messages[:index:index], append([]domain.Message{removed}, s.Messages[index:]...)...)
			}
		})
		return err
	}
	return nil
}

// MarkAllRead marks every displayed message read, with the same rollback
// rule as MarkRead.
func (p *Poller) MarkAllRead(ctx context.Context) error {
	var (
		before State
		gen    uint64
	)
	p.update(func(s *State) {
		before = s.clone()
		gen = p.generation
		s.UnreadCount -= int64(len(s.Messages))
		if s.UnreadCount < 0 {
			s.UnreadCount = 0
		}
		s.Messages = nil
		s.Status = Idle
	})
	if len(before.Messages) == 0 {
		return nil
	}

	ids := make([]string, 0, len(before.Messages))
	for _, m := range before.Messages {
		ids = append(ids, m.ID)
	}
	if _, err := p.src.MarkManyRead(ctx, ids); err != nil {
		p.update(func(s *State) {
			if p.generation == gen {
				*s = before
			}
		})
		return err
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (p *Poller) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

func (p *Poller) update(fn func(*State)) {
	p.mu.Lock()
	fn(&p.state)
	snap := p.state.clone()
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(snap)
	}
}
