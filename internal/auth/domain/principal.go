// Package domain defines API callers authenticated by bearer token.
package domain

import (
	"github.com/allisson/chatcrypt/internal/errors"
)

// ErrInvalidToken indicates the bearer token matched no configured hash.
var ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid bearer token")

// FingerprintLength is the number of hash characters kept in a Principal.
const FingerprintLength = 12

// Principal identifies an authenticated caller. Tokens carry no identity of
// their own, so callers are told apart by a fingerprint of the token.
type Principal struct {
	// Fingerprint is a prefix of the token's SHA-256 hex hash. It is safe to log.
	Fingerprint string
}

// NewPrincipal builds a principal from a hex token hash.
func NewPrincipal(tokenHash string) *Principal {
	fingerprint := tokenHash
	if len(fingerprint) > FingerprintLength {
		fingerprint = fingerprint[:FingerprintLength]
	}
	return &Principal{Fingerprint: fingerprint}
}

// IssuedToken is a newly generated token and the Argon2id hash to configure.
type IssuedToken struct {
	Token string
	Hash  string
}
