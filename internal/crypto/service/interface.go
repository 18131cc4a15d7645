// Package service provides the cryptographic primitives behind chat encryption:
// AEAD ciphers, P-256 key agreement, the message cipher, the file chunk cipher,
// and KMS keeper access for file key wrapping.
package service

import (
	"context"
	"io"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext under a fresh random nonce and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Seal encrypts plaintext under a caller-supplied nonce.
	Seal(nonce, plaintext, aad []byte) ([]byte, error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyAgreement generates key pairs and derives pairwise shared secrets.
type KeyAgreement interface {
	// GenerateKeyPair creates a fresh P-256 key pair for userID.
	GenerateKeyPair(userID string) (*cryptoDomain.KeyPair, error)

	// DeriveSharedSecret runs ECDH between own's private key and peerPublicKey.
	DeriveSharedSecret(
		own *cryptoDomain.KeyPair,
		peerPublicKey []byte,
		pair cryptoDomain.ParticipantPair,
	) ([]byte, error)
}

// MessageCipher encrypts chat messages into base64(IV ‖ ciphertext ‖ tag).
type MessageCipher interface {
	Encrypt(plaintext string, secret []byte) (string, error)
	Decrypt(encoded string, secret []byte) (string, error)
}

// FileCipher encrypts file content chunk by chunk.
type FileCipher interface {
	GenerateFileKey() (cryptoDomain.FileKey, error)
	GenerateSalt() ([]byte, error)
	EncryptChunk(chunk, key, iv []byte, index uint64) ([]byte, error)
	DecryptChunk(chunk, key, iv []byte, index uint64) ([]byte, error)
	EncryptStream(ctx context.Context, r io.Reader, w io.Writer, key cryptoDomain.FileKey, chunkSize int) error
	DecryptStream(ctx context.Context, r io.Reader, w io.Writer, key cryptoDomain.FileKey, chunkSize int) error
}
