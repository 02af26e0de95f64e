package controllers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/auth"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/memories"
	"github.com/dmitrijs2005/memomap/internal/client/repositories/session"
)

type fakeRouter struct {
	mu    sync.Mutex
	calls []string
}

func (r *fakeRouter) GoHome()  { r.record("home") }
func (r *fakeRouter) GoLogin() { r.record("login") }

func (r *fakeRouter) record(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *fakeRouter) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// countingAuth wraps an auth.Repository and records calls.
type countingAuth struct {
	auth.Repository
	mu        sync.Mutex
	logins    int
	logouts   []string
	logoutErr error
}

func (a *countingAuth) Login(ctx context.Context, u, p string) (*models.User, error) {
	a.mu.Lock()
	a.logins++
	a.mu.Unlock()
	return a.Repository.Login(ctx, u, p)
}

func (a *countingAuth) Logout(ctx context.Context, token string) (string, error) {
	a.mu.Lock()
	a.logouts = append(a.logouts, token)
	err := a.logoutErr
	a.mu.Unlock()
	if err != nil {
		return "", err
	}
	return a.Repository.Logout(ctx, token)
}

// world is an in-process backend with one registered user, alice.
type world struct {
	auth     *auth.InMemoryRepository
	memories *memories.InMemoryRepository
	store    *session.MemoryStore
	token    string
}

func newWorld(t *testing.T) *world {
	t.Helper()
	a := auth.NewInMemoryRepository()
	u, err := a.Register(context.Background(), "alice", "pw")
	require.NoError(t, err)
	return &world{
		auth:     a,
		memories: memories.NewInMemoryRepository(a.ResolveToken),
		store:    session.NewMemoryStore(),
		token:    *u.Token,
	}
}

// login stores alice's session directly.
func (w *world) login(t *testing.T) {
	t.Helper()
	require.NoError(t, w.store.Save(context.Background(), models.FullUpdate(models.SessionState{
		Token: w.token, Username: "alice", UserID: 1,
	})))
}

type gatedResult struct {
	items []models.MemoryPost
	err   error
}

// gatedMemories blocks ListAll and ListOwn until the test releases them.
type gatedMemories struct {
	memories.Repository
	started chan chan gatedResult
}

func newGatedMemories(inner memories.Repository) *gatedMemories {
	return &gatedMemories{Repository: inner, started: make(chan chan gatedResult, 4)}
}

func (g *gatedMemories) wait(ctx context.Context) ([]models.MemoryPost, error) {
	release := make(chan gatedResult, 1)
	g.started <- release
	select {
	case r := <-release:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedMemories) ListAll(ctx context.Context, _ string) ([]models.MemoryPost, error) {
	return g.wait(ctx)
}

func (g *gatedMemories) ListOwn(ctx context.Context, _ string) ([]models.MemoryPost, error) {
	return g.wait(ctx)
}

func strPtr(s string) *string { return &s }

// stalledGet never answers GetByID; it returns when ctx ends.
type stalledGet struct {
	memories.Repository
	started chan struct{}
}

func (s *stalledGet) GetByID(ctx context.Context, _ string, _ int) (*models.MemoryPost, error) {
	s.started <- struct{}{}
	<-ctx.Done()
	return nil, ctx.Err()
}
