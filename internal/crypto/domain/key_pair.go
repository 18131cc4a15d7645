package domain

import (
	"strings"
	"time"
)

// KeyPair is a user's P-256 key agreement key pair.
//
// PublicKey holds the uncompressed point encoding (65 bytes) and PrivateKey the
// 32-byte scalar. Pairs live in memory for the process lifetime and are never
// persisted. ExpiresAt is carried for callers that want to display it; nothing
// enforces it.
type KeyPair struct {
	UserID     string
	PublicKey  []byte
	PrivateKey []byte
	CreatedAt  time.Time
	ExpiresAt  *time.Time
}

// ValidateUserID rejects empty or whitespace-only identifiers.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	return nil
}
