package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_NewToken(t *testing.T) {
	gen := NewTokenGenerator()

	token, err := gen.NewToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	// Tokens are hex-encoded random bytes
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestTokenGenerator_TokensAreUnique(t *testing.T) {
	gen := NewTokenGenerator()

	seen := make(map[string]bool)
	for range 100 {
		token, err := gen.NewToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}
