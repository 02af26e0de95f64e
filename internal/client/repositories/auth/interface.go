package auth

import (
	"context"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

// Repository describes the account operations of the MemoMap API.
type Repository interface {
	// Register creates an account and returns it with a fresh token.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Login authenticates and returns the account with a fresh token.
	Login(ctx context.Context, username, password string) (*models.User, error)

	// Logout revokes token on the server and returns the server message.
	Logout(ctx context.Context, token string) (string, error)
}
