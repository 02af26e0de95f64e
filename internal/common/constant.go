// Package common contains shared constants and sentinel errors used across
// MemoMap client components.
package common

// TokenHeaderName is the HTTP header that carries the session token on
// authenticated requests to the MemoMap API.
const TokenHeaderName = "X-API-TOKEN"

// RequestIDHeaderName tags every outbound request so client and server logs
// can be correlated.
const RequestIDHeaderName = "X-Request-ID"

// Logged-out session defaults. A token equal to UnknownToken (or blank)
// means nobody is logged in.
const (
	UnknownToken    = "Unknown"
	UnknownUsername = "Unknown"
	UnknownUserID   = 0
)
