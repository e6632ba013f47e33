package notification_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/notification"
)

type fakeSource struct {
	mu        sync.Mutex
	summary   domain.UnreadSummary
	fetchErr  error
	markErr   error
	fetches   int32
	marked    [][]string
	fetchGate chan struct{}
	markGate  chan struct{}
}

func (f *fakeSource) UnreadSummary(ctx context.Context) (*domain.UnreadSummary, error) {
	atomic.AddInt32(&f.fetches, 1)
	if f.fetchGate != nil {
		<-f.fetchGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	s := f.summary
	s.LatestMessages = append([]domain.Message(nil), f.summary.LatestMessages...)
	return &s, nil
}

func (f *fakeSource) MarkManyRead(ctx context.Context, ids []string) (int64, error) {
	if f.markGate != nil {
		<-f.markGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, ids)
	if f.markErr != nil {
		return 0, f.markErr
	}
	return int64(len(ids)), nil
}

func (f *fakeSource) set(summary domain.UnreadSummary) {
	f.mu.Lock()
	f.summary = summary
	f.mu.Unlock()
}

func messages(ids ...string) []domain.Message {
	out := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Message{ID: id, Name: "sender " + id})
	}
	return out
}

func ids(state notification.State) []string {
	out := []string{}
	for _, m := range state.Messages {
		out = append(out, m.ID)
	}
	return out
}

func TestPollerRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Should display the fetched summary", func(t *testing.T) {
		src := &fakeSource{summary: domain.UnreadSummary{UnreadCount: 7, LatestMessages: messages("a", "b")}}
		p := notification.NewPoller(src, time.Minute, nil)

		p.Refresh(ctx)

		state := p.Snapshot()
		assert.Equal(t, notification.Displaying, state.Status)
		assert.Equal(t, int64(7), state.UnreadCount)
		assert.Equal(t, []string{"a", "b"}, ids(state))
	})

	t.Run("Should fall back to zero state on failure", func(t *testing.T) {
		src := &fakeSource{summary: domain.UnreadSummary{UnreadCount: 2, LatestMessages: messages("a")}}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		src.mu.Lock()
		src.fetchErr = errors.New("offline")
		src.mu.Unlock()
		p.Refresh(ctx)

		state := p.Snapshot()
		assert.Equal(t, notification.Idle, state.Status)
		assert.Zero(t, state.UnreadCount)
		assert.Empty(t, state.Messages)
	})

	t.Run("Should notify every change", func(t *testing.T) {
		var seen []notification.Status
		src := &fakeSource{summary: domain.UnreadSummary{UnreadCount: 1, LatestMessages: messages("a")}}
		p := notification.NewPoller(src, time.Minute, func(s notification.State) {
			seen = append(seen, s.Status)
		})

		p.Refresh(ctx)
		assert.Equal(t, []notification.Status{notification.Fetching, notification.Displaying}, seen)
	})
}

func TestPollerMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove the message before the call returns", func(t *testing.T) {
		src := &fakeSource{
			summary:  domain.UnreadSummary{UnreadCount: 3, LatestMessages: messages("a", "b", "c")},
			markGate: make(chan struct{}),
		}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		done := make(chan error)
		go func() { done <- p.MarkRead(ctx, "b") }()

		require.Eventually(t, func() bool { return p.Snapshot().UnreadCount == 2 }, time.Second, time.Millisecond)
		assert.Equal(t, []string{"a", "c"}, ids(p.Snapshot()))

		close(src.markGate)
		require.NoError(t, <-done)
		assert.Equal(t, [][]string{{"b"}}, src.marked)
	})

	t.Run("Should roll back when the call fails", func(t *testing.T) {
		src := &fakeSource{
			summary: domain.UnreadSummary{UnreadCount: 3, LatestMessages: messages("a", "b", "c")},
			markErr: errors.New("503"),
		}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		err := p.MarkRead(ctx, "b")
		require.Error(t, err)

		state := p.Snapshot()
		assert.Equal(t, int64(3), state.UnreadCount)
		assert.Equal(t, []string{"a", "b", "c"}, ids(state))
	})

	t.Run("Should keep a newer poll over the rollback", func(t *testing.T) {
		src := &fakeSource{
			summary:  domain.UnreadSummary{UnreadCount: 2, LatestMessages: messages("a", "b")},
			markErr:  errors.New("503"),
			markGate: make(chan struct{}),
		}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		done := make(chan error)
		go func() { done <- p.MarkRead(ctx, "a") }()
		require.Eventually(t, func() bool { return p.Snapshot().UnreadCount == 1 }, time.Second, time.Millisecond)

		src.set(domain.UnreadSummary{UnreadCount: 5, LatestMessages: messages("x", "y")})
		p.Refresh(ctx)

		close(src.markGate)
		require.Error(t, <-done)

		state := p.Snapshot()
		assert.Equal(t, int64(5), state.UnreadCount)
		assert.Equal(t, []string{"x", "y"}, ids(state))
	})

	t.Run("Should not go below zero", func(t *testing.T) {
		src := &fakeSource{summary: domain.UnreadSummary{UnreadCount: 0, LatestMessages: messages("a")}}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		require.NoError(t, p.MarkRead(ctx, "a"))
		assert.Zero(t, p.Snapshot().UnreadCount)
		assert.Equal(t, notification.Idle, p.Snapshot().Status)
	})

	t.Run("Should keep a zero count when a failed call is rolled back", func(t *testing.T) {
		src := &fakeSource{markErr: errors.New("503")}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		require.Error(t, p.MarkRead(ctx, "missing"))

		state := p.Snapshot()
		assert.Zero(t, state.UnreadCount)
		assert.Empty(t, state.Messages)
		assert.Equal(t, notification.Idle, state.Status)
	})

	t.Run("Should mark everything displayed", func(t *testing.T) {
		src := &fakeSource{summary: domain.UnreadSummary{UnreadCount: 9, LatestMessages: messages("a", "b")}}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		require.NoError(t, p.MarkAllRead(ctx))
		assert.Equal(t, [][]string{{"a", "b"}}, src.marked)
		assert.Equal(t, int64(7), p.Snapshot().UnreadCount)
		assert.Empty(t, p.Snapshot().Messages)
	})

	t.Run("Should restore everything when mark all fails", func(t *testing.T) {
		src := &fakeSource{
			summary: domain.UnreadSummary{UnreadCount: 2, LatestMessages: messages("a", "b")},
			markErr: errors.New("boom"),
		}
		p := notification.NewPoller(src, time.Minute, nil)
		p.Refresh(ctx)

		require.Error(t, p.MarkAllRead(ctx))
		state := p.Snapshot()
		assert.Equal(t, int64(2), state.UnreadCount)
		assert.Equal(t, []string{"a", "b"}, ids(state))
		assert.Equal(t, notification.Displaying, state.Status)
	})
}

func TestPollerRun(t *testing.T) {
	t.Run("Should skip ticks while a fetch is running", func(t *testing.T) {
		src := &fakeSource{fetchGate: make(chan struct{})}
		p := notification.NewPoller(src, 2*time.Millisecond, nil)

		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		go func() {
			p.Run(ctx)
			close(stopped)
		}()

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(1), atomic.LoadInt32(&src.fetches))

		cancel()
		select {
		case <-stopped:
			t.Fatal("Run returned before the in-flight fetch finished")
		case <-time.After(10 * time.Millisecond):
		}

		close(src.fetchGate)
		select {
		case <-stopped:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancellation")
		}
	})

	t.Run("Should poll again on the next tick", func(t *testing.T) {
		src := &fakeSource{summary: domain.UnreadSummary{UnreadCount: 1, LatestMessages: messages("a")}}
		p := notification.NewPoller(src, 5*time.Millisecond, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go p.Run(ctx)

		require.Eventually(t, func() bool { return atomic.LoadInt32(&src.fetches) >= 3 }, time.Second, time.Millisecond)
		assert.Equal(t, int64(1), p.Snapshot().UnreadCount)
	})
}
