package usecase

import (
	"context"
	"log/slog"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	"github.com/allisson/chatcrypt/internal/outbox/domain"
)

// MessageDeliveryProcessor handles message.stored events. Delivery to clients is
// out of scope, so it announces the stored ciphertext reference in the log, where
// a transport adapter can pick it up.
type MessageDeliveryProcessor struct {
	logger *slog.Logger
}

// NewMessageDeliveryProcessor creates a MessageDeliveryProcessor. A nil logger discards output.
func NewMessageDeliveryProcessor(logger *slog.Logger) *MessageDeliveryProcessor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MessageDeliveryProcessor{logger: logger}
}

// Process decodes and announces the event. Unknown event types are acknowledged
// with a warning so they do not block the queue.
func (p *MessageDeliveryProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case chatDomain.MessageStoredEvent:
		var payload chatDomain.MessageStoredPayload
		if err := event.DecodePayload(&payload); err != nil {
			return err
		}
		p.logger.InfoContext(ctx, "message ready for delivery",
			slog.String("event_id", event.ID.String()),
			slog.String("message_id", payload.MessageID.String()),
			slog.String("sender_id", payload.SenderID),
			slog.String("recipient_id", payload.RecipientID),
		)
	default:
		p.logger.WarnContext(ctx, "unknown event type", slog.String("event_type", event.EventType))
	}
	return nil
}
