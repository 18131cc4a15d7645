package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	"github.com/allisson/chatcrypt/internal/metrics"
)

// chatUseCaseWithMetrics decorates ChatUseCase with metrics instrumentation.
type chatUseCaseWithMetrics struct {
	next    ChatUseCase
	metrics metrics.BusinessMetrics
}

// NewChatUseCaseWithMetrics wraps a ChatUseCase with metrics recording.
func NewChatUseCaseWithMetrics(useCase ChatUseCase, m metrics.BusinessMetrics) ChatUseCase {
	return &chatUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *chatUseCaseWithMetrics) Send(
	ctx context.Context,
	senderID, recipientID, plaintext string,
) (*chatDomain.Message, error) {
	start := time.Now()
	msg, err := c.next.Send(ctx, senderID, recipientID, plaintext)
	c.record(ctx, "message_send", start, err)
	return msg, err
}

func (c *chatUseCaseWithMetrics) List(
	ctx context.Context,
	userID, peerID string,
	offset, limit int,
) ([]*chatDomain.Message, error) {
	start := time.Now()
	messages, err := c.next.List(ctx, userID, peerID, offset, limit)
	c.record(ctx, "message_list", start, err)
	return messages, err
}

func (c *chatUseCaseWithMetrics) DecryptStored(ctx context.Context, id uuid.UUID, userID string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.DecryptStored(ctx, id, userID)
	c.record(ctx, "message_decrypt_stored", start, err)
	return plaintext, err
}

func (c *chatUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, "chat", operation, start, err)
}
