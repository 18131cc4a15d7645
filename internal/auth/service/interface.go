// Package service provides token generation and hashing for API authentication.
package service

// SecretService hashes and verifies secrets with Argon2id.
type SecretService interface {
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService generates bearer tokens and computes their lookup hashes.
type TokenService interface {
	// GenerateToken returns a new random base64url token.
	GenerateToken() (plainToken string, err error)

	// HashToken returns the hex SHA-256 of plainToken. It is a fast lookup key,
	// not a credential.
	HashToken(plainToken string) string
}
