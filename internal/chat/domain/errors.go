package domain

import (
	"github.com/allisson/chatcrypt/internal/errors"
)

var (
	// ErrMessageNotFound indicates no stored message has the requested ID.
	ErrMessageNotFound = errors.Wrap(errors.ErrNotFound, "message not found")

	// ErrNotParticipant indicates the caller is neither sender nor recipient of the message.
	ErrNotParticipant = errors.Wrap(errors.ErrForbidden, "user is not a participant of this message")
)
