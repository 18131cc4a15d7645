// Package usecase implements the chat encryption business logic: pairwise key
// agreement with cached shared secrets, message encryption between participants,
// and per-file chunk encryption with optional KMS key wrapping.
package usecase

import (
	"context"
	"io"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// KeyAgreementUseCase resolves key pairs and pairwise shared secrets.
type KeyAgreementUseCase interface {
	// GetOrCreateKeyPair returns the user's key pair, generating it on first use.
	GetOrCreateKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error)

	// GetKeyPair returns an existing key pair or ErrKeyPairNotFound.
	GetKeyPair(ctx context.Context, userID string) (*cryptoDomain.KeyPair, error)

	// GetOrCreateSharedKey returns the secret shared by userID and recipientID.
	// The result is identical for (A,B) and (B,A). Callers own the returned Key
	// and should zero it after use.
	GetOrCreateSharedKey(ctx context.Context, userID, recipientID string) (*cryptoDomain.SharedSecret, error)
}

// MessageUseCase encrypts and decrypts chat messages between two participants.
type MessageUseCase interface {
	Encrypt(ctx context.Context, senderID, recipientID, plaintext string) (string, error)
	Decrypt(ctx context.Context, senderID, recipientID, ciphertext string) (string, error)
}

// FileUseCase manages file keys and chunk encryption.
type FileUseCase interface {
	GenerateFileKey(ctx context.Context) (*FileKeyMaterial, error)
	WrapFileKey(ctx context.Context, fileKey cryptoDomain.FileKey) ([]byte, error)
	UnwrapFileKey(ctx context.Context, wrapped []byte) (cryptoDomain.FileKey, error)
	EncryptChunk(ctx context.Context, chunk []byte, fileKey cryptoDomain.FileKey, index uint64) ([]byte, error)
	DecryptChunk(ctx context.Context, chunk []byte, fileKey cryptoDomain.FileKey, index uint64) ([]byte, error)
	EncryptStream(ctx context.Context, r io.Reader, w io.Writer, fileKey cryptoDomain.FileKey) error
	DecryptStream(ctx context.Context, r io.Reader, w io.Writer, fileKey cryptoDomain.FileKey) error
}

// FileKeyMaterial is a freshly generated file key with its reserved salt.
type FileKeyMaterial struct {
	FileKey cryptoDomain.FileKey
	Salt    []byte
}
