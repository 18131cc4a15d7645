package domain

import (
	"encoding/base64"
)

// EncryptedMessage is an AES-256-GCM sealed chat message.
// Ciphertext carries the 16-byte tag at its end.
type EncryptedMessage struct {
	IV         []byte
	Ciphertext []byte
}

// Encode returns base64(IV ‖ ciphertext ‖ tag) using standard padded encoding.
func (m EncryptedMessage) Encode() string {
	buf := make([]byte, 0, len(m.IV)+len(m.Ciphertext))
	buf = append(buf, m.IV...)
	buf = append(buf, m.Ciphertext...)
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeEncryptedMessage parses the Encode format.
// Returns ErrMalformedInput for invalid base64 or payloads shorter than the IV.
func DecodeEncryptedMessage(encoded string) (EncryptedMessage, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return EncryptedMessage{}, ErrMalformedInput
	}
	if len(raw) < NonceSize {
		return EncryptedMessage{}, ErrMalformedInput
	}
	return EncryptedMessage{IV: raw[:NonceSize], Ciphertext: raw[NonceSize:]}, nil
}
