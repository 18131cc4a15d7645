package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
)

type messageUseCase struct {
	keyAgreement  KeyAgreementUseCase
	messageCipher cryptoService.MessageCipher
}

// NewMessageUseCase creates a MessageUseCase.
func NewMessageUseCase(keyAgreement KeyAgreementUseCase, messageCipher cryptoService.MessageCipher) MessageUseCase {
	return &messageUseCase{
		keyAgreement:  keyAgreement,
		messageCipher: messageCipher,
	}
}

// Encrypt seals plaintext with the sender/recipient shared secret.
func (m *messageUseCase) Encrypt(ctx context.Context, senderID, recipientID, plaintext string) (string, error) {
	secret, err := m.keyAgreement.GetOrCreateSharedKey(ctx, senderID, recipientID)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(secret.Key)

	return m.messageCipher.Encrypt(plaintext, secret.Key)
}

// Decrypt opens ciphertext with the sender/recipient shared secret. Either participant
// may decrypt since the secret is symmetric.
func (m *messageUseCase) Decrypt(ctx context.Context, senderID, recipientID, ciphertext string) (string, error) {
	secret, err := m.keyAgreement.GetOrCreateSharedKey(ctx, senderID, recipientID)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(secret.Key)

	return m.messageCipher.Decrypt(ciphertext, secret.Key)
}
