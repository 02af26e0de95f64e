// Package controllers holds the client's view-state controllers: the
// authentication controller, the memory-list controller and the
// single-memory controller.
//
// A controller owns observable state driven by a reducer from uistate and
// runs the effects the reducer asks for (saving the session, navigation,
// refreshing lists). Each controller fences its requests: when a newer
// request has started, the completion of an older one is dropped.
//
// Observers registered with Subscribe are called in update order, outside
// the state lock. They may read the controller but must not call methods
// that change it.
package controllers

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

// ErrFormInvalid is returned when a submit is attempted with an empty
// username or password. Nothing is sent and the state is unchanged.
var ErrFormInvalid = errors.New("username and password are required")

// SessionReader is the read side of the session store.
type SessionReader interface {
	Current(ctx context.Context) (models.SessionState, error)
}

// SessionWriter is the part of the session store the auth controller uses.
type SessionWriter interface {
	SessionReader
	Save(ctx context.Context, u models.SessionUpdate) error
	Clear(ctx context.Context) error
}

// Router is implemented by navigation.Navigator.
type Router interface {
	GoHome()
	GoLogin()
}
