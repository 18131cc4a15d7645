package dto

import (
	"time"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
)

// MessageResponse is a stored message. Only ciphertext is ever returned here.
type MessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Ciphertext  string    `json:"ciphertext"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMessagesResponse wraps a page of stored messages.
type ListMessagesResponse struct {
	Data []MessageResponse `json:"data"`
}

// PlaintextResponse carries a decrypted stored message.
type PlaintextResponse struct {
	ID        string `json:"id"`
	Plaintext string `json:"plaintext"`
}

// MapMessageToResponse converts a domain message to its API form.
func MapMessageToResponse(msg *chatDomain.Message) MessageResponse {
	return MessageResponse{
		ID:          msg.ID.String(),
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Ciphertext:  msg.Ciphertext,
		CreatedAt:   msg.CreatedAt,
	}
}

// MapMessagesToListResponse converts a page of messages. The result's Data is
// never nil so empty pages encode as [].
func MapMessagesToListResponse(messages []*chatDomain.Message) ListMessagesResponse {
	data := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		data = append(data, MapMessageToResponse(msg))
	}
	return ListMessagesResponse{Data: data}
}
