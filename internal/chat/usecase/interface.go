// Package usecase stores and retrieves encrypted chat messages. Messages are
// encrypted by the crypto message use case before they reach the store.
package usecase

import (
	"context"

	"github.com/google/uuid"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	outboxDomain "github.com/allisson/chatcrypt/internal/outbox/domain"
)

// MessageRepository persists encrypted messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *chatDomain.Message) error
	Get(ctx context.Context, id uuid.UUID) (*chatDomain.Message, error)
	List(ctx context.Context, userID, peerID string, offset, limit int) ([]*chatDomain.Message, error)
}

// OutboxEventRepository records events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// ChatUseCase is the chat-storage API.
type ChatUseCase interface {
	// Send encrypts plaintext from senderID to recipientID and stores the result
	// together with a message.stored outbox event. Nothing is stored on failure.
	Send(ctx context.Context, senderID, recipientID, plaintext string) (*chatDomain.Message, error)

	// List returns stored ciphertext records involving userID, newest first.
	// A non-empty peerID restricts the result to that conversation.
	List(ctx context.Context, userID, peerID string, offset, limit int) ([]*chatDomain.Message, error)

	// DecryptStored decrypts a stored message for one of its participants.
	DecryptStored(ctx context.Context, id uuid.UUID, userID string) (string, error)
}
