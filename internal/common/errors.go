package common

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation needs a session token
	// but the local session is logged out. No request is sent in that case.
	ErrNotAuthenticated = errors.New("User not authenticated")

	// ErrNotAuthenticatedFeed is the feed flavour of ErrNotAuthenticated.
	ErrNotAuthenticatedFeed = errors.New("User not authenticated to view feed")

	// ErrInvalidID is returned for non-positive memory identifiers.
	ErrInvalidID = errors.New("invalid memory id")
)

// ErrUnauthorized is returned by in-process backends for unknown or revoked tokens.
var ErrUnauthorized = errors.New("Unauthorized")
