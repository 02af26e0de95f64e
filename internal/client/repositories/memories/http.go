package memories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/client/transport"
)

type HTTPRepository struct {
	caller *transport.Caller
}

func NewHTTPRepository(caller *transport.Caller) *HTTPRepository {
	return &HTTPRepository{caller: caller}
}

func (r *HTTPRepository) ListOwn(ctx context.Context, token string) ([]models.MemoryPost, error) {
	return r.list(ctx, "/api/memories/user", token)
}

func (r *HTTPRepository) ListAll(ctx context.Context, token string) ([]models.MemoryPost, error) {
	return r.list(ctx, "/api/memories", token)
}

func (r *HTTPRepository) list(ctx context.Context, path, token string) ([]models.MemoryPost, error) {
	call, err := r.caller.NewCall(http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return transport.AwaitResult(ctx, call, transport.Identity[[]models.MemoryPost])
}

func (r *HTTPRepository) Create(ctx context.Context, token, caption, imageURI string, location *string) (*models.MemoryPost, error) {
	req := models.MemoryPostRequest{Caption: caption, ImageURL: imageURI, Location: location}
	return r.single(ctx, http.MethodPost, "/api/memories", token, req)
}

func (r *HTTPRepository) Update(ctx context.Context, token string, id int, caption, imageURI string, location *string) (*models.MemoryPost, error) {
	req := models.MemoryPostRequest{Caption: caption, ImageURL: imageURI, Location: location}
	return r.single(ctx, http.MethodPut, itemPath(id), token, req)
}

func (r *HTTPRepository) GetByID(ctx context.Context, token string, id int) (*models.MemoryPost, error) {
	return r.single(ctx, http.MethodGet, itemPath(id), token, nil)
}

func (r *HTTPRepository) Delete(ctx context.Context, token string, id int) (bool, error) {
	call, err := r.caller.NewCall(http.MethodDelete, itemPath(id), token, nil)
	if err != nil {
		return false, err
	}
	return transport.AwaitResult(ctx, call, func(models.GeneralResponse) bool { return true })
}

func (r *HTTPRepository) single(ctx context.Context, method, path, token string, body any) (*models.MemoryPost, error) {
	call, err := r.caller.NewCall(method, path, token, body)
	if err != nil {
		return nil, err
	}
	return transport.AwaitResult(ctx, call, func(resp models.MemoryPostResponse) *models.MemoryPost {
		m := resp.Data
		return &m
	})
}

func itemPath(id int) string {
	return fmt.Sprintf("/api/memories/%d", id)
}
