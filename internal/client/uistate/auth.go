package uistate

import (
	"strings"

	"github.com/dmitrijs2005/memomap/internal/client/models"
)

type AuthPhase int

const (
	AuthIdle AuthPhase = iota
	AuthSubmitting
	AuthSucceeded
	AuthFailed
)

func (p AuthPhase) String() string {
	switch p {
	case AuthSubmitting:
		return "submitting"
	case AuthSucceeded:
		return "succeeded"
	case AuthFailed:
		return "failed"
	default:
		return "idle"
	}
}

// AuthStatus is the outcome of the last login, register or logout.
// User is set in AuthSucceeded, Message in AuthFailed.
type AuthStatus struct {
	Phase   AuthPhase
	User    *models.User
	Message string
}

// AuthForm is the login/register form.
type AuthForm struct {
	Username               string
	Password               string
	PasswordVisible        bool
	ConfirmPasswordVisible bool
}

// Valid reports whether the form may be submitted.
func (f AuthForm) Valid() bool {
	return strings.TrimSpace(f.Username) != "" && f.Password != ""
}

type AuthEvent interface{ authEvent() }

type (
	AuthSubmit       struct{}
	AuthSucceededEvt struct{ User models.User }
	AuthFailedEvt    struct{ Message string }
	AuthConsumed     struct{}
	AuthLoggedOut    struct{}
)

func (AuthSubmit) authEvent()       {}
func (AuthSucceededEvt) authEvent() {}
func (AuthFailedEvt) authEvent()    {}
func (AuthConsumed) authEvent()     {}
func (AuthLoggedOut) authEvent()    {}

func ReduceAuth(s AuthStatus, e AuthEvent) (AuthStatus, []Effect) {
	switch e := e.(type) {
	case AuthSubmit:
		return AuthStatus{Phase: AuthSubmitting}, nil
	case AuthSucceededEvt:
		u := e.User
		return AuthStatus{Phase: AuthSucceeded, User: &u}, []Effect{PersistSession, NavigateHome, ResetForm}
	case AuthFailedEvt:
		return AuthStatus{Phase: AuthFailed, Message: e.Message}, nil
	case AuthConsumed:
		if s.Phase == AuthSucceeded || s.Phase == AuthFailed {
			return AuthStatus{Phase: AuthIdle}, nil
		}
		return s, nil
	case AuthLoggedOut:
		return AuthStatus{Phase: AuthIdle}, []Effect{ClearSession, NavigateLogin}
	}
	return s, nil
}
