package memories

import (
	"context"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

// Repository describes memory-post operations. Every call carries the
// session token of the acting user.
type Repository interface {
	// ListOwn returns the posts of the user the token belongs to.
	ListOwn(ctx context.Context, token string) ([]models.MemoryPost, error)
	// ListAll returns the feed of every user's posts.
	ListAll(ctx context.Context, token string) ([]models.MemoryPost, error)
	Create(ctx context.Context, token, caption, imageURI string, location *string) (*models.MemoryPost, error)
	Update(ctx context.Context, token string, id int, caption, imageURI string, location *string) (*models.MemoryPost, error)
	// Delete reports true once the server confirmed the deletion.
	Delete(ctx context.Context, token string, id int) (bool, error)
	GetByID(ctx context.Context, token string, id int) (*models.MemoryPost, error)
}
