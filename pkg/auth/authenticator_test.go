package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthorized(t *testing.T) {
	open := NewAuthenticator(nil)
	assert.True(t, open.IsAuthorized(42))

	restricted := NewAuthenticator([]int64{1, 2})
	assert.True(t, restricted.IsAuthorized(2))
	assert.False(t, restricted.IsAuthorized(42))
}

func TestValidSecret(t *testing.T) {
	assert.True(t, ValidSecret("123:abc", "123:abc"))
	assert.False(t, ValidSecret("123:abd", "123:abc"))
	assert.False(t, ValidSecret("", ""))
	assert.False(t, ValidSecret("123", "123:abc"))
}
