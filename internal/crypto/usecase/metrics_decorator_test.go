package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	"github.com/allisson/chatcrypt/internal/crypto/usecase"
	usecaseMocks "github.com/allisson/chatcrypt/internal/crypto/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "crypto", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "crypto", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestKeyAgreementUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrCreateKeyPair_Success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockKeyAgreementUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewKeyAgreementUseCaseWithMetrics(mockNext, mockMetrics)

		keyPair := &cryptoDomain.KeyPair{UserID: "alice"}
		mockNext.On("GetOrCreateKeyPair", ctx, "alice").Return(keyPair, nil).Once()
		expectMetrics(mockMetrics, ctx, "key_pair_get_or_create", "success")

		result, err := uc.GetOrCreateKeyPair(ctx, "alice")
		assert.NoError(t, err)
		assert.Equal(t, keyPair, result)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetKeyPair_Error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockKeyAgreementUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewKeyAgreementUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetKeyPair", ctx, "alice").Return(nil, cryptoDomain.ErrKeyPairNotFound).Once()
		expectMetrics(mockMetrics, ctx, "key_pair_get", "error")

		result, err := uc.GetKeyPair(ctx, "alice")
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyPairNotFound)
		assert.Nil(t, result)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetOrCreateSharedKey_Success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockKeyAgreementUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewKeyAgreementUseCaseWithMetrics(mockNext, mockMetrics)

		secret := &cryptoDomain.SharedSecret{Pair: cryptoDomain.NewParticipantPair("alice", "bob")}
		mockNext.On("GetOrCreateSharedKey", ctx, "alice", "bob").Return(secret, nil).Once()
		expectMetrics(mockMetrics, ctx, "shared_key_get_or_create", "success")

		result, err := uc.GetOrCreateSharedKey(ctx, "alice", "bob")
		assert.NoError(t, err)
		assert.Equal(t, secret, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMessageUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Encrypt_Success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockMessageUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewMessageUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Encrypt", ctx, "alice", "bob", "hi").Return("c2VhbGVk", nil).Once()
		expectMetrics(mockMetrics, ctx, "message_encrypt", "success")

		ciphertext, err := uc.Encrypt(ctx, "alice", "bob", "hi")
		assert.NoError(t, err)
		assert.Equal(t, "c2VhbGVk", ciphertext)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Decrypt_Error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockMessageUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewMessageUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Decrypt", ctx, "bob", "alice", "bad").Return("", cryptoDomain.ErrAuthenticationFailed).Once()
		expectMetrics(mockMetrics, ctx, "message_decrypt", "error")

		_, err := uc.Decrypt(ctx, "bob", "alice", "bad")
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
		mockMetrics.AssertExpectations(t)
	})
}

func TestFileUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	fileKey := cryptoDomain.FileKey{Key: make([]byte, 32), IV: make([]byte, 12)}

	t.Run("GenerateFileKey_Success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewFileUseCaseWithMetrics(mockNext, mockMetrics)

		material := &usecase.FileKeyMaterial{FileKey: fileKey, Salt: make([]byte, 16)}
		mockNext.On("GenerateFileKey", ctx).Return(material, nil).Once()
		expectMetrics(mockMetrics, ctx, "file_key_generate", "success")

		result, err := uc.GenerateFileKey(ctx)
		assert.NoError(t, err)
		assert.Equal(t, material, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("WrapFileKey_Error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewFileUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("WrapFileKey", ctx, fileKey).Return(nil, cryptoDomain.ErrKMSNotConfigured).Once()
		expectMetrics(mockMetrics, ctx, "file_key_wrap", "error")

		_, err := uc.WrapFileKey(ctx, fileKey)
		assert.ErrorIs(t, err, cryptoDomain.ErrKMSNotConfigured)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("UnwrapFileKey_Success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewFileUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("UnwrapFileKey", ctx, []byte("wrapped")).Return(fileKey, nil).Once()
		expectMetrics(mockMetrics, ctx, "file_key_unwrap", "success")

		result, err := uc.UnwrapFileKey(ctx, []byte("wrapped"))
		assert.NoError(t, err)
		assert.Equal(t, fileKey, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Chunks", func(t *testing.T) {
		mockNext := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewFileUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("EncryptChunk", ctx, []byte("plain"), fileKey, uint64(2)).Return([]byte("sealed"), nil).Once()
		mockNext.On("DecryptChunk", ctx, []byte("sealed"), fileKey, uint64(2)).
			Return(nil, errors.New("boom")).
			Once()
		expectMetrics(mockMetrics, ctx, "file_chunk_encrypt", "success")
		expectMetrics(mockMetrics, ctx, "file_chunk_decrypt", "error")

		sealed, err := uc.EncryptChunk(ctx, []byte("plain"), fileKey, 2)
		assert.NoError(t, err)
		assert.Equal(t, []byte("sealed"), sealed)

		_, err = uc.DecryptChunk(ctx, []byte("sealed"), fileKey, 2)
		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}
