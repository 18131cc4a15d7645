package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/chatcrypt/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
	"github.com/allisson/chatcrypt/internal/httputil"
	customValidation "github.com/allisson/chatcrypt/internal/validation"
)

// MessageHandler encrypts and decrypts messages without storing them.
type MessageHandler struct {
	messageUseCase cryptoUseCase.MessageUseCase
	maxMessageSize int
	logger         *slog.Logger
}

func NewMessageHandler(
	messageUseCase cryptoUseCase.MessageUseCase,
	maxMessageSize int,
	logger *slog.Logger,
) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
		maxMessageSize: maxMessageSize,
		logger:         logger,
	}
}

// EncryptHandler returns base64(IV || ciphertext || tag).
// POST /v1/messages/encrypt
func (h *MessageHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(h.maxMessageSize); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ciphertext, err := h.messageUseCase.Encrypt(c.Request.Context(), req.SenderID, req.RecipientID, req.Plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.CiphertextResponse{Ciphertext: ciphertext})
}

// DecryptHandler reverses EncryptHandler. Failures surface as 422.
// POST /v1/messages/decrypt
func (h *MessageHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := h.messageUseCase.Decrypt(c.Request.Context(), req.SenderID, req.RecipientID, req.Ciphertext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.PlaintextResponse{Plaintext: plaintext})
}
