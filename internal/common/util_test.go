package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLoggedInToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"tok123", true},
		{"Unknown", false},
		{"", false},
		{"   ", false},
		{" Unknown ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLoggedInToken(tt.token), "token %q", tt.token)
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
