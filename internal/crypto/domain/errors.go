package domain

import (
	"github.com/allisson/chatcrypt/internal/errors"
)

// Cryptographic error definitions.
//
// Input-related failures wrap errors.ErrInvalidInput so they map to 422 at the HTTP layer.
// ErrKeyGenerationFailed wraps no standard kind and surfaces as an internal error.
var (
	// ErrKeyGenerationFailed indicates the platform could not produce a P-256 key pair.
	ErrKeyGenerationFailed = errors.New("key generation failed")

	// ErrAgreementFailed indicates ECDH could not complete, usually because the peer
	// public key is not a valid P-256 point.
	ErrAgreementFailed = errors.Wrap(errors.ErrInvalidInput, "key agreement failed")

	// ErrAuthenticationFailed indicates the AEAD tag did not verify: wrong key,
	// tampered ciphertext, or a chunk presented at the wrong index.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "cannot decrypt this message")

	// ErrMalformedInput indicates the encoded input is structurally invalid.
	ErrMalformedInput = errors.Wrap(errors.ErrInvalidInput, "malformed input")

	// ErrInvalidKeySize indicates a key or IV of the wrong length.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedAlgorithm indicates an unknown cipher or KDF name.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidUserID indicates an empty participant identifier.
	ErrInvalidUserID = errors.Wrap(errors.ErrInvalidInput, "invalid user id")

	// ErrKeyPairCapacityReached indicates the key pair registry is full. Existing
	// pairs are never evicted, so new users are rejected instead.
	ErrKeyPairCapacityReached = errors.Wrap(errors.ErrConflict, "key pair capacity reached")

	// ErrInvalidChunkSize indicates a non-positive stream chunk size.
	ErrInvalidChunkSize = errors.Wrap(errors.ErrInvalidInput, "invalid chunk size")

	// ErrKMSNotConfigured indicates a file key wrap was requested without KMS_KEY_URI.
	ErrKMSNotConfigured = errors.Wrap(errors.ErrInvalidInput, "kms is not configured")
)

// ErrKeyPairNotFound indicates no key pair has been created for the user yet.
var ErrKeyPairNotFound = errors.Wrap(errors.ErrNotFound, "key pair not found")
