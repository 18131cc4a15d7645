package http

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	"github.com/allisson/chatcrypt/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
	"github.com/allisson/chatcrypt/internal/httputil"
	customValidation "github.com/allisson/chatcrypt/internal/validation"
)

// FileHandler manages file keys and single-chunk encryption.
type FileHandler struct {
	fileUseCase cryptoUseCase.FileUseCase
	chunkSize   int
	logger      *slog.Logger
}

// NewFileHandler creates a FileHandler. chunkSize bounds plaintext chunks; sealed
// chunks may carry an extra tag.
func NewFileHandler(fileUseCase cryptoUseCase.FileUseCase, chunkSize int, logger *slog.Logger) *FileHandler {
	return &FileHandler{fileUseCase: fileUseCase, chunkSize: chunkSize, logger: logger}
}

// GenerateKeyHandler returns fresh key, iv and salt.
// POST /v1/files/keys
func (h *FileHandler) GenerateKeyHandler(c *gin.Context) {
	material, err := h.fileUseCase.GenerateFileKey(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer material.FileKey.Zero()

	c.JSON(http.StatusCreated, dto.MapFileKeyMaterialToResponse(material))
}

// WrapKeyHandler encrypts file key material with the configured KMS key.
// POST /v1/files/keys/wrap
func (h *FileHandler) WrapKeyHandler(c *gin.Context) {
	var req dto.FileKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	fileKey, err := req.FileKey()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer fileKey.Zero()

	wrapped, err := h.fileUseCase.WrapFileKey(c.Request.Context(), fileKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.WrappedFileKeyResponse{WrappedKey: base64.StdEncoding.EncodeToString(wrapped)})
}

// UnwrapKeyHandler reverses WrapKeyHandler.
// POST /v1/files/keys/unwrap
func (h *FileHandler) UnwrapKeyHandler(c *gin.Context) {
	var req dto.UnwrapFileKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	wrapped, err := base64.StdEncoding.DecodeString(req.WrappedKey)
	if err != nil {
		httputil.HandleErrorGin(c, cryptoDomain.ErrMalformedInput, h.logger)
		return
	}

	fileKey, err := h.fileUseCase.UnwrapFileKey(c.Request.Context(), wrapped)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer fileKey.Zero()

	c.JSON(http.StatusOK, dto.MapFileKeyToResponse(fileKey))
}

// EncryptChunkHandler seals one chunk at its index.
// POST /v1/files/chunks/encrypt
func (h *FileHandler) EncryptChunkHandler(c *gin.Context) {
	h.handleChunk(c, h.chunkSize, h.fileUseCase.EncryptChunk)
}

// DecryptChunkHandler opens one chunk at its index.
// POST /v1/files/chunks/decrypt
func (h *FileHandler) DecryptChunkHandler(c *gin.Context) {
	h.handleChunk(c, h.chunkSize+cryptoDomain.TagSize, h.fileUseCase.DecryptChunk)
}

type chunkFunc func(ctx context.Context, chunk []byte, fileKey cryptoDomain.FileKey, index uint64) ([]byte, error)

func (h *FileHandler) handleChunk(c *gin.Context, maxChunkBytes int, fn chunkFunc) {
	var req dto.ChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(maxChunkBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	fileKey, data, err := req.Decode()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer fileKey.Zero()

	out, err := fn(c.Request.Context(), data, fileKey, req.Index)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.ChunkResponse{Index: req.Index, Data: base64.StdEncoding.EncodeToString(out)})
}
