package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

// hub holds the last published state and fans it out to watchers. Each
// watcher owns a channel with a buffer of one that always holds the newest
// undelivered state.
type hub struct {
	mu     sync.Mutex
	state  models.SessionState
	subs   map[chan models.SessionState]struct{}
	closed bool
	done   chan struct{}

	// watchers counts the goroutines that unregister a watcher.
	watchers sync.WaitGroup
}

func newHub(initial models.SessionState) *hub {
	return &hub{
		state: initial,
		subs:  make(map[chan models.SessionState]struct{}),
		done:  make(chan struct{}),
	}
}

func (h *hub) current() models.SessionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *hub) watch(ctx context.Context) <-chan models.SessionState {
	ch := make(chan models.SessionState, 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || ctx.Err() != nil {
		close(ch)
		return ch
	}
	ch <- h.state
	h.subs[ch] = struct{}{}

	h.watchers.Add(1)
	go func() {
		defer h.watchers.Done()
		select {
		case <-ctx.Done():
		case <-h.done:
			return
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}()

	return ch
}

func (h *hub) publish(s models.SessionState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = s
	for ch := range h.subs {
		select {
		case ch <- s:
		default:
			// drop the stale value, only publish writes under h.mu
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
