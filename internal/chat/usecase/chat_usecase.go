package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
	"github.com/allisson/chatcrypt/internal/database"
	outboxDomain "github.com/allisson/chatcrypt/internal/outbox/domain"
)

type chatUseCase struct {
	txManager      database.TxManager
	messageRepo    MessageRepository
	outboxRepo     OutboxEventRepository
	messageUseCase cryptoUseCase.MessageUseCase
}

// Send encrypts before opening the transaction so no lock is held during crypto work.
func (c *chatUseCase) Send(
	ctx context.Context,
	senderID, recipientID, plaintext string,
) (*chatDomain.Message, error) {
	ciphertext, err := c.messageUseCase.Encrypt(ctx, senderID, recipientID, plaintext)
	if err != nil {
		return nil, err
	}

	msg := &chatDomain.Message{
		ID:          uuid.Must(uuid.NewV7()),
		SenderID:    senderID,
		RecipientID: recipientID,
		Ciphertext:  ciphertext,
		CreatedAt:   time.Now().UTC(),
	}

	event, err := outboxDomain.NewOutboxEvent(chatDomain.MessageStoredEvent, chatDomain.MessageStoredPayload{
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		CreatedAt:   msg.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.messageRepo.Create(ctx, msg); err != nil {
			return err
		}
		return c.outboxRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (c *chatUseCase) List(
	ctx context.Context,
	userID, peerID string,
	offset, limit int,
) ([]*chatDomain.Message, error) {
	if err := cryptoDomain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if peerID != "" {
		if err := cryptoDomain.ValidateUserID(peerID); err != nil {
			return nil, err
		}
	}
	return c.messageRepo.List(ctx, userID, peerID, offset, limit)
}

func (c *chatUseCase) DecryptStored(ctx context.Context, id uuid.UUID, userID string) (string, error) {
	if err := cryptoDomain.ValidateUserID(userID); err != nil {
		return "", err
	}

	msg, err := c.messageRepo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !msg.HasParticipant(userID) {
		return "", chatDomain.ErrNotParticipant
	}

	return c.messageUseCase.Decrypt(ctx, msg.SenderID, msg.RecipientID, msg.Ciphertext)
}

// NewChatUseCase creates a ChatUseCase backed by the given repositories and
// message cipher use case.
func NewChatUseCase(
	txManager database.TxManager,
	messageRepo MessageRepository,
	outboxRepo OutboxEventRepository,
	messageUseCase cryptoUseCase.MessageUseCase,
) ChatUseCase {
	return &chatUseCase{
		txManager:      txManager,
		messageRepo:    messageRepo,
		outboxRepo:     outboxRepo,
		messageUseCase: messageUseCase,
	}
}
