package auth

import (
	"context"
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

func (r *HTTPRepository) Register(ctx context.Context, username, password string) (*models.User, error) {
	return r.authenticate(ctx, "/api/register", username, password)
}

func (r *HTTPRepository) Login(ctx context.Context, username, password string) (*models.User, error) {
	return r.authenticate(ctx, "/api/login", username, password)
}

func (r *HTTPRepository) authenticate(ctx context.Context, path, username, password string) (*models.User, error) {
	call, err := r.caller.NewCall(http.MethodPost, path, "", models.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return transport.AwaitResult(ctx, call, func(resp models.UserResponse) *models.User {
		u := resp.Data
		return &u
	})
}

func (r *HTTPRepository) Logout(ctx context.Context, token string) (string, error) {
	call, err := r.caller.NewCall(http.MethodPut, "/api/logout", token, nil)
	if err != nil {
		return "", err
	}
	return transport.AwaitResult(ctx, call, func(resp models.GeneralResponse) string {
		return resp.Message
	})
}
