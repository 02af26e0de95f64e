package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

var ErrClosed = errors.New("session store closed")

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	writeMu sync.Mutex
	hub     *hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hub: newHub(models.DefaultSession())}
}

func (s *MemoryStore) Current(ctx context.Context) (models.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return models.SessionState{}, err
	}
	return s.hub.current(), nil
}

func (s *MemoryStore) Watch(ctx context.Context) <-chan models.SessionState {
	return s.hub.watch(ctx)
}

func (s *MemoryStore) Save(ctx context.Context, u models.SessionUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.hub.mu.Lock()
	closed := s.hub.closed
	next := s.hub.state.Apply(u)
	s.hub.mu.Unlock()

	if closed {
		return ErrClosed
	}
	s.hub.publish(next)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Save(ctx, models.FullUpdate(models.DefaultSession()))
}

func (s *MemoryStore) Close() error {
	s.hub.close()
	return nil
}
