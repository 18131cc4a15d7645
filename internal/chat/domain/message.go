// Package domain defines the stored chat message model. Only ciphertext is
// persisted; plaintext never reaches the store.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageStoredEvent is the outbox event type written alongside every stored message.
const MessageStoredEvent = "message.stored"

// Message is an encrypted chat message between two participants.
type Message struct {
	ID          uuid.UUID
	SenderID    string
	RecipientID string
	// Ciphertext is the base64(IV || ciphertext || tag) blob produced by the message cipher.
	Ciphertext string
	CreatedAt  time.Time
}

// HasParticipant reports whether userID is the sender or the recipient.
func (m *Message) HasParticipant(userID string) bool {
	return m.SenderID == userID || m.RecipientID == userID
}

// Peer returns the other participant of the conversation as seen by userID.
func (m *Message) Peer(userID string) string {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}

// MessageStoredPayload is the JSON payload of a message.stored outbox event.
type MessageStoredPayload struct {
	MessageID   uuid.UUID `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}
