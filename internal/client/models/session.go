package models

import "github.com/dmitrijs2005/memomap/internal/common"

// SessionState identifies the current user, or the logged-out defaults.
type SessionState struct {
	Token    string
	Username string
	UserID   int
}

// DefaultSession is the logged-out session.
func DefaultSession() SessionState {
	return SessionState{
		Token:    common.UnknownToken,
		Username: common.UnknownUsername,
		UserID:   common.UnknownUserID,
	}
}

// LoggedIn is the single definition of "logged in" used by every gate.
func (s SessionState) LoggedIn() bool {
	return common.IsLoggedInToken(s.Token)
}

// SessionUpdate is a partial save: nil fields are left untouched.
type SessionUpdate struct {
	Token    *string
	Username *string
	UserID   *int
}

// Apply returns s with the non-nil fields of u written over it.
func (s SessionState) Apply(u SessionUpdate) SessionState {
	if u.Token != nil {
		s.Token = *u.Token
	}
	if u.Username != nil {
		s.Username = *u.Username
	}
	if u.UserID != nil {
		s.UserID = *u.UserID
	}
	return s
}

// FullUpdate sets every field of the session.
func FullUpdate(s SessionState) SessionUpdate {
	return SessionUpdate{Token: &s.Token, Username: &s.Username, UserID: &s.UserID}
}
