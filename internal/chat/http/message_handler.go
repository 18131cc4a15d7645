// Package http exposes the chat message store over HTTP.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/chatcrypt/internal/chat/http/dto"
	chatUseCase "github.com/allisson/chatcrypt/internal/chat/usecase"
	"github.com/allisson/chatcrypt/internal/httputil"
	customValidation "github.com/allisson/chatcrypt/internal/validation"
)

var errInvalidMessageID = errors.New("invalid message id")

// MessageHandler handles stored chat message requests.
type MessageHandler struct {
	chatUseCase    chatUseCase.ChatUseCase
	maxMessageSize int
	logger         *slog.Logger
}

// NewMessageHandler creates a MessageHandler. maxMessageSize bounds the plaintext in bytes.
func NewMessageHandler(useCase chatUseCase.ChatUseCase, maxMessageSize int, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		chatUseCase:    useCase,
		maxMessageSize: maxMessageSize,
		logger:         logger,
	}
}

// SendHandler encrypts and stores a message.
// POST /v1/messages - Returns 201 Created with the stored ciphertext record.
func (h *MessageHandler) SendHandler(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(h.maxMessageSize); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	msg, err := h.chatUseCase.Send(c.Request.Context(), req.SenderID, req.RecipientID, req.Plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMessageToResponse(msg))
}

// ListHandler lists stored messages for a user, optionally narrowed to one peer.
// GET /v1/messages?user_id=&peer_id=&offset=&limit=
func (h *MessageHandler) ListHandler(c *gin.Context) {
	var query dto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	messages, err := h.chatUseCase.List(c.Request.Context(), query.UserID, query.PeerID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMessagesToListResponse(messages))
}

// PlaintextHandler decrypts a stored message for one of its participants.
// GET /v1/messages/:id/plaintext?user_id=
func (h *MessageHandler) PlaintextHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, errInvalidMessageID, h.logger)
		return
	}

	plaintext, err := h.chatUseCase.DecryptStored(c.Request.Context(), id, c.Query("user_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PlaintextResponse{ID: id.String(), Plaintext: plaintext})
}
