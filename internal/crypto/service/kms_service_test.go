package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalKeyURI(t *testing.T) {
	uri, err := NewLocalKeyURI()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "base64key://"))

	other, err := NewLocalKeyURI()
	require.NoError(t, err)
	assert.NotEqual(t, uri, other)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keyURI, err := NewLocalKeyURI()
		require.NoError(t, err)

		keeper, err := kmsService.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		wrapped, err := keeper.Encrypt(ctx, []byte("file key material"))
		require.NoError(t, err)
		assert.NotEqual(t, []byte("file key material"), wrapped)

		unwrapped, err := keeper.Decrypt(ctx, wrapped)
		require.NoError(t, err)
		assert.Equal(t, []byte("file key material"), unwrapped)
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_KeepersAreIsolated(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	uri1, err := NewLocalKeyURI()
	require.NoError(t, err)
	uri2, err := NewLocalKeyURI()
	require.NoError(t, err)

	keeper1, err := kmsService.OpenKeeper(ctx, uri1)
	require.NoError(t, err)
	defer func() { assert.NoError(t, keeper1.Close()) }()

	keeper2, err := kmsService.OpenKeeper(ctx, uri2)
	require.NoError(t, err)
	defer func() { assert.NoError(t, keeper2.Close()) }()

	wrapped, err := keeper1.Encrypt(ctx, []byte("test data"))
	require.NoError(t, err)

	_, err = keeper2.Decrypt(ctx, wrapped)
	assert.Error(t, err)

	_, err = keeper1.Decrypt(ctx, []byte("not a valid ciphertext"))
	assert.Error(t, err)
}
