package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

func TestMemory_WatchReplaysLatest(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Save(ctx, models.SessionUpdate{Token: ptr("t1")}))

	ch := s.Watch(ctx)
	got := <-ch
	assert.Equal(t, "t1", got.Token)
}

func TestMemory_SlowWatcherGetsNewest(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)
	for _, tok := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, models.SessionUpdate{Token: ptr(tok)}))
	}

	got := <-ch
	assert.Equal(t, "c", got.Token)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra state %+v", extra)
	default:
	}
}

func TestMemory_WatchClosesOnCancel(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	ch := s.Watch(ctx)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed")
	}
}

func TestMemory_WatchOnCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := <-s.Watch(ctx)
	assert.False(t, ok)
}

func TestMemory_ClearIsNeverObservedHalfDone(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logged := models.SessionState{Token: "t", Username: "alice", UserID: 3}
	require.NoError(t, s.Save(ctx, models.FullUpdate(logged)))

	ch := s.Watch(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	var seen []models.SessionState
	go func() {
		defer wg.Done()
		for st := range ch {
			seen = append(seen, st)
			if !st.LoggedIn() {
				return
			}
		}
	}()

	require.NoError(t, s.Clear(ctx))
	wg.Wait()

	for _, st := range seen {
		assert.True(t, st == logged || st == models.DefaultSession(), "mixed state %+v", st)
	}
}

func TestMemory_ConcurrentPartialSaves(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.Save(ctx, models.SessionUpdate{Token: ptr("t")})
	}()
	go func() {
		defer wg.Done()
		_ = s.Save(ctx, models.SessionUpdate{Username: ptr("alice")})
	}()
	wg.Wait()

	got, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Token)
	assert.Equal(t, "alice", got.Username)
}

func TestMemory_SaveAfterClose(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Save(context.Background(), models.SessionUpdate{}), ErrClosed)
}
