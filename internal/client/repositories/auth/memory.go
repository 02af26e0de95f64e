package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/common"
)

var (
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrInvalidCredentials = errors.New("Username or password wrong")
)

type account struct {
	id       int
	username string
	password string
}

// InMemoryRepository is a deterministic Repository: user ids start at 1 and
// the n-th issued token is "tok-n".
type InMemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]int
	nextID   int
	issued   int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts: make(map[string]*account),
		tokens:   make(map[string]int),
	}
}

func (r *InMemoryRepository) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[username]; ok {
		return nil, ErrUsernameTaken
	}
	r.nextID++
	a := &account{id: r.nextID, username: username, password: password}
	r.accounts[username] = a

	return r.issue(a), nil
}

func (r *InMemoryRepository) Login(ctx context.Context, username, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[username]
	if !ok || a.password != password {
		return nil, ErrInvalidCredentials
	}
	return r.issue(a), nil
}

func (r *InMemoryRepository) Logout(ctx context.Context, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return "", common.ErrUnauthorized
	}
	delete(r.tokens, token)
	return "Logout Success!", nil
}

// ResolveToken maps a live token to its user id.
func (r *InMemoryRepository) ResolveToken(token string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.tokens[token]
	return id, ok
}

// issue must be called with r.mu held.
func (r *InMemoryRepository) issue(a *account) *models.User {
	r.issued++
	token := fmt.Sprintf("tok-%d", r.issued)
	r.tokens[token] = a.id
	return &models.User{ID: a.id, Username: a.username, Token: &token}
}
