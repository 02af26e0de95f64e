package common

import "strings"

// IsLoggedInToken reports whether token denotes an authenticated session.
// Every gate in the client goes through this function.
func IsLoggedInToken(token string) bool {
	t := strings.TrimSpace(token)
	return t != "" && t != UnknownToken
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
