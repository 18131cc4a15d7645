// Package http exposes key agreement, message encryption and file chunk
// encryption over HTTP.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/chatcrypt/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
	"github.com/allisson/chatcrypt/internal/httputil"
)

// KeyHandler publishes user public keys.
type KeyHandler struct {
	keyAgreementUseCase cryptoUseCase.KeyAgreementUseCase
	logger              *slog.Logger
}

func NewKeyHandler(keyAgreementUseCase cryptoUseCase.KeyAgreementUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{keyAgreementUseCase: keyAgreementUseCase, logger: logger}
}

// EnsureHandler creates the user's key pair if needed and returns its public key.
// POST /v1/keys/:user_id
func (h *KeyHandler) EnsureHandler(c *gin.Context) {
	keyPair, err := h.keyAgreementUseCase.GetOrCreateKeyPair(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapKeyPairToResponse(keyPair))
}

// GetHandler returns an existing public key, 404 if the user has none yet.
// GET /v1/keys/:user_id
func (h *KeyHandler) GetHandler(c *gin.Context) {
	keyPair, err := h.keyAgreementUseCase.GetKeyPair(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapKeyPairToResponse(keyPair))
}
