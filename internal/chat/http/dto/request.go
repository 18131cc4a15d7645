// Package dto provides request and response bodies for the chat message store API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/chatcrypt/internal/validation"
)

// SendMessageRequest asks the service to encrypt and store a message.
type SendMessageRequest struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Plaintext   string `json:"plaintext"`
}

// Validate checks the request against the configured plaintext limit in bytes.
func (r *SendMessageRequest) Validate(maxMessageSize int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SenderID, customValidation.UserID...),
		validation.Field(&r.RecipientID, customValidation.UserID...),
		validation.Field(&r.Plaintext, customValidation.MaxBytes(maxMessageSize)),
	)
}

// ListMessagesQuery holds the query parameters of a history listing.
type ListMessagesQuery struct {
	UserID string `form:"user_id"`
	PeerID string `form:"peer_id"`
}

// Validate checks that the listing names a valid user and, optionally, peer.
func (q *ListMessagesQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.UserID, customValidation.UserID...),
		validation.Field(&q.PeerID, customValidation.NoWhitespace, validation.Length(0, customValidation.MaxUserIDLength)),
	)
}
