// Package models defines client-side data models used by the MemoMap client.
package models

// User is the account returned by register and login. Token is absent once
// the user has logged out.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Token    *string `json:"token"`
}

// UserResponse wraps User the way /api/register and /api/login return it.
type UserResponse struct {
	Data User `json:"data"`
}

// GeneralResponse is the {message} body of logout and delete.
type GeneralResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of a non-success API response.
type ErrorResponse struct {
	Errors string `json:"errors"`
}

// Credentials is the request body of register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
