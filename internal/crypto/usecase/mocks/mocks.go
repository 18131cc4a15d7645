// Package mocks provides mock implementations of the crypto use cases for testing.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
)

// MockKeyAgreementUseCase is a mock implementation of KeyAgreementUseCase.
type MockKeyAgreementUseCase struct {
	mock.Mock
}

// GetOrCreateKeyPair mocks the GetOrCreateKeyPair method.
func (m *MockKeyAgreementUseCase) GetOrCreateKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyPair), args.Error(1)
}

// GetKeyPair mocks the GetKeyPair method.
func (m *MockKeyAgreementUseCase) GetKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyPair), args.Error(1)
}

// GetOrCreateSharedKey mocks the GetOrCreateSharedKey method.
func (m *MockKeyAgreementUseCase) GetOrCreateSharedKey(
	ctx context.Context,
	userID, recipientID string,
) (*cryptoDomain.SharedSecret, error) {
	args := m.Called(ctx, userID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.SharedSecret), args.Error(1)
}

// MockMessageUseCase is a mock implementation of MessageUseCase.
type MockMessageUseCase struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method.
func (m *MockMessageUseCase) Encrypt(ctx context.Context, senderID, recipientID, plaintext string) (string, error) {
	args := m.Called(ctx, senderID, recipientID, plaintext)
	return args.String(0), args.Error(1)
}

// Decrypt mocks the Decrypt method.
func (m *MockMessageUseCase) Decrypt(ctx context.Context, senderID, recipientID, ciphertext string) (string, error) {
	args := m.Called(ctx, senderID, recipientID, ciphertext)
	return args.String(0), args.Error(1)
}

// MockFileUseCase is a mock implementation of FileUseCase.
type MockFileUseCase struct {
	mock.Mock
}

// GenerateFileKey mocks the GenerateFileKey method.
func (m *MockFileUseCase) GenerateFileKey(ctx context.Context) (*cryptoUseCase.FileKeyMaterial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoUseCase.FileKeyMaterial), args.Error(1)
}

// WrapFileKey mocks the WrapFileKey method.
func (m *MockFileUseCase) WrapFileKey(ctx context.Context, fileKey cryptoDomain.FileKey) ([]byte, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// UnwrapFileKey mocks the UnwrapFileKey method.
func (m *MockFileUseCase) UnwrapFileKey(ctx context.Context, wrapped []byte) (cryptoDomain.FileKey, error) {
	args := m.Called(ctx, wrapped)
	return args.Get(0).(cryptoDomain.FileKey), args.Error(1)
}

// EncryptChunk mocks the EncryptChunk method.
func (m *MockFileUseCase) EncryptChunk(
	ctx context.Context,
	chunk []byte,
	fileKey cryptoDomain.FileKey,
	index uint64,
) ([]byte, error) {
	args := m.Called(ctx, chunk, fileKey, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptChunk mocks the DecryptChunk method.
func (m *MockFileUseCase) DecryptChunk(
	ctx context.Context,
	chunk []byte,
	fileKey cryptoDomain.FileKey,
	index uint64,
) ([]byte, error) {
	args := m.Called(ctx, chunk, fileKey, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// EncryptStream mocks the EncryptStream method.
func (m *MockFileUseCase) EncryptStream(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	fileKey cryptoDomain.FileKey,
) error {
	args := m.Called(ctx, r, w, fileKey)
	return args.Error(0)
}

// DecryptStream mocks the DecryptStream method.
func (m *MockFileUseCase) DecryptStream(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	fileKey cryptoDomain.FileKey,
) error {
	args := m.Called(ctx, r, w, fileKey)
	return args.Error(0)
}
