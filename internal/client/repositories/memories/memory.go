package memories

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/common"
)

var (
	ErrNotFound  = errors.New("Memory not found")
	ErrForbidden = errors.New("You can only modify your own memories")
)

// TokenResolver maps a session token to the id of its user.
type TokenResolver func(token string) (int, bool)

// InMemoryRepository keeps posts in insertion order and assigns ids from 1.
type InMemoryRepository struct {
	mu      sync.Mutex
	resolve TokenResolver
	posts   []models.MemoryPost
	nextID  int
}

func NewInMemoryRepository(resolve TokenResolver) *InMemoryRepository {
	return &InMemoryRepository{resolve: resolve}
}

func (r *InMemoryRepository) ListOwn(ctx context.Context, token string) ([]models.MemoryPost, error) {
	userID, err := r.authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := []models.MemoryPost{}
	for _, p := range r.posts {
		if p.UserID == userID {
			res = append(res, clonePost(p))
		}
	}
	return res, nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context, token string) ([]models.MemoryPost, error) {
	if _, err := r.authorize(ctx, token); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := make([]models.MemoryPost, 0, len(r.posts))
	for _, p := range r.posts {
		res = append(res, clonePost(p))
	}
	return res, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, token, caption, imageURI string, location *string) (*models.MemoryPost, error) {
	userID, err := r.authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p := models.MemoryPost{
		ID:       r.nextID,
		UserID:   userID,
		Caption:  caption,
		ImageURL: imageURI,
		Location: cloneString(location),
	}
	r.posts = append(r.posts, p)

	res := clonePost(p)
	return &res, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, token string, id int, caption, imageURI string, location *string) (*models.MemoryPost, error) {
	userID, err := r.authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	r.posts[i].Caption = caption
	r.posts[i].ImageURL = imageURI
	r.posts[i].Location = cloneString(location)

	res := clonePost(r.posts[i])
	return &res, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, token string, id int) (bool, error) {
	userID, err := r.authorize(ctx, token)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.owned(id, userID)
	if err != nil {
		return false, err
	}
	r.posts = slices.Delete(r.posts, i, i+1)
	return true, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, token string, id int) (*models.MemoryPost, error) {
	if _, err := r.authorize(ctx, token); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	res := clonePost(r.posts[i])
	return &res, nil
}

func (r *InMemoryRepository) authorize(ctx context.Context, token string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.resolve == nil {
		return 0, common.ErrUnauthorized
	}
	id, ok := r.resolve(token)
	if !ok {
		return 0, common.ErrUnauthorized
	}
	return id, nil
}

// owned must be called with r.mu held.
func (r *InMemoryRepository) owned(id, userID int) (int, error) {
	i := r.index(id)
	if i < 0 {
		return -1, ErrNotFound
	}
	if r.posts[i].UserID != userID {
		return -1, ErrForbidden
	}
	return i, nil
}

func (r *InMemoryRepository) index(id int) int {
	return slices.IndexFunc(r.posts, func(p models.MemoryPost) bool { return p.ID == id })
}

func clonePost(p models.MemoryPost) models.MemoryPost {
	p.Location = cloneString(p.Location)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
