package transport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnavailable wraps every failure where no response reached the client.
	ErrUnavailable = errors.New("server unavailable")
	// ErrEmptyBody is returned for a success status without a payload.
	ErrEmptyBody = errors.New("empty body")
	// ErrAlreadyExecuted is reported when a Call is enqueued twice.
	ErrAlreadyExecuted = errors.New("call already executed")
	// ErrBodyTooLarge is returned for a success status whose body exceeds the read limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// APIError is a non-success response. Error returns the server message
// verbatim so it can be shown to the user as is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// messageFields are probed in order when extracting a message from an error body.
var messageFields = []string{"errors", "message", "error"}

// errorMessage extracts the server message from a failed response, falling
// back to the raw body and then to a generic text.
func errorMessage(resp *Response) string {
	body := strings.TrimSpace(string(resp.Body))

	if body != "" && gjson.Valid(body) {
		for _, field := range messageFields {
			r := gjson.Get(body, field)
			if r.Exists() && r.Type != gjson.Null && r.String() != "" {
				return r.String()
			}
		}
	}
	if body != "" {
		return body
	}
	return fmt.Sprintf("call failed with status code %d", resp.StatusCode)
}
