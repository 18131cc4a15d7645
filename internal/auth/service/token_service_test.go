package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	service := NewTokenService()

	token, err := service.GenerateToken()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, tokenBytes)

	other, err := service.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestTokenService_HashToken(t *testing.T) {
	service := NewTokenService()

	sum := sha256.Sum256([]byte("token"))
	assert.Equal(t, hex.EncodeToString(sum[:]), service.HashToken("token"))
	assert.Len(t, service.HashToken("other"), 64)
}
