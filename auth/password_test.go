package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPassword(t *testing.T) {
	var tts = []struct {
		password string
		valid    bool
	}{
		{"", false},
		{"Sh0rt", false},
		{"alllowercase1", false},
		{"NoDigitsHere", false},
		{"Password1", true},
		{"X9abcdefg", true},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.valid, IsValidPassword(tt.password), "password %q", tt.password)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", hash)

	assert.True(t, CheckPassword(hash, "Password1"))
	assert.False(t, CheckPassword(hash, "Password2"))
	assert.False(t, CheckPassword("not a hash", "Password1"))
}
