package service

import (
	"unicode/utf8"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// MessageCipherService implements MessageCipher with AES-256-GCM.
//
// Each call draws a fresh 12-byte IV, so encrypting the same plaintext twice yields
// different output. The encoded form is base64(IV ‖ ciphertext ‖ tag).
type MessageCipherService struct {
	aeadManager AEADManager
}

// NewMessageCipher creates a new MessageCipherService.
func NewMessageCipher(aeadManager AEADManager) *MessageCipherService {
	return &MessageCipherService{aeadManager: aeadManager}
}

// Encrypt seals plaintext with secret and returns the encoded message.
func (m *MessageCipherService) Encrypt(plaintext string, secret []byte) (string, error) {
	aead, err := m.aeadManager.CreateCipher(secret, cryptoDomain.AESGCM)
	if err != nil {
		return "", err
	}

	ciphertext, iv, err := aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", err
	}

	return cryptoDomain.EncryptedMessage{IV: iv, Ciphertext: ciphertext}.Encode(), nil
}

// Decrypt opens an encoded message. It returns ErrMalformedInput for structurally
// invalid input and ErrAuthenticationFailed when the tag does not verify.
func (m *MessageCipherService) Decrypt(encoded string, secret []byte) (string, error) {
	aead, err := m.aeadManager.CreateCipher(secret, cryptoDomain.AESGCM)
	if err != nil {
		return "", err
	}

	msg, err := cryptoDomain.DecodeEncryptedMessage(encoded)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Decrypt(msg.Ciphertext, msg.IV, nil)
	if err != nil {
		return "", cryptoDomain.ErrAuthenticationFailed
	}

	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.ErrMalformedInput
	}

	return string(plaintext), nil
}
