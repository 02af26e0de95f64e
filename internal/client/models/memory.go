package models

import "fmt"

// MemoryPost is a geotagged photo post owned by exactly one user.
// Location is free-form text.
type MemoryPost struct {
	ID       int     `json:"id"`
	UserID   int     `json:"userId"`
	Caption  string  `json:"caption"`
	ImageURL string  `json:"imageUrl"`
	Location *string `json:"location"`
}

func (m MemoryPost) String() string {
	loc := "-"
	if m.Location != nil && *m.Location != "" {
		loc = *m.Location
	}
	return fmt.Sprintf("#%d by user %d: %q [%s] %s", m.ID, m.UserID, m.Caption, loc, m.ImageURL)
}

// MemoryPostRequest is the body of create and update. Identifiers travel in
// the path and the token.
type MemoryPostRequest struct {
	Caption  string  `json:"caption"`
	ImageURL string  `json:"imageUrl"`
	Location *string `json:"location"`
}

// MemoryPostResponse wraps a single post.
type MemoryPostResponse struct {
	Data    MemoryPost `json:"data"`
	Message *string    `json:"message,omitempty"`
}
