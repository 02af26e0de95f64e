// Package session persists the current user's token, username and id and
// lets any number of observers follow changes.
//
// Saves are atomic: observers see either the state before a save or the
// state after it, never a mix. Clear is a save of the logged-out defaults.
package session

import (
	"context"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

// Keys of the persisted session. Values are stored as strings.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyUserID   = "id"
)

type Store interface {
	// Current returns the persisted state, or the defaults when nothing was saved.
	Current(ctx context.Context) (models.SessionState, error)

	// Watch delivers the current state first and then every saved state
	// until ctx ends or the store is closed, after which the channel is
	// closed. A slow reader receives the newest state; intermediate states
	// may be skipped.
	Watch(ctx context.Context) <-chan models.SessionState

	// Save writes the non-nil fields of u in one step.
	Save(ctx context.Context, u models.SessionUpdate) error

	// Clear restores the logged-out defaults.
	Clear(ctx context.Context) error

	Close() error
}
