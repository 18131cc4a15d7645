package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService(t *testing.T) {
	service := NewSecretService()

	hash, err := service.HashSecret("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, service.CompareSecret("correct horse", hash))
	assert.False(t, service.CompareSecret("wrong horse", hash))
	assert.False(t, service.CompareSecret("correct horse", "not-a-hash"))

	again, err := service.HashSecret("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}
