// Package dto provides request and response bodies for the crypto API. Binary
// values travel as standard base64 strings.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	customValidation "github.com/allisson/chatcrypt/internal/validation"
)

// EncryptMessageRequest encrypts plaintext from sender to recipient.
type EncryptMessageRequest struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Plaintext   string `json:"plaintext"`
}

// Validate checks participants and bounds plaintext to maxMessageSize bytes.
func (r *EncryptMessageRequest) Validate(maxMessageSize int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SenderID, customValidation.UserID...),
		validation.Field(&r.RecipientID, customValidation.UserID...),
		validation.Field(&r.Plaintext, customValidation.MaxBytes(maxMessageSize)),
	)
}

// DecryptMessageRequest decrypts a ciphertext exchanged between two participants.
// Either participant may appear as sender.
type DecryptMessageRequest struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Ciphertext  string `json:"ciphertext"`
}

func (r *DecryptMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SenderID, customValidation.UserID...),
		validation.Field(&r.RecipientID, customValidation.UserID...),
		validation.Field(&r.Ciphertext, validation.Required),
	)
}

// FileKeyRequest carries raw file key material.
type FileKeyRequest struct {
	Key string `json:"key"`
	IV  string `json:"iv"`
}

func (r *FileKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key, validation.Required, customValidation.Base64Length(cryptoDomain.KeySize)),
		validation.Field(&r.IV, validation.Required, customValidation.Base64Length(cryptoDomain.NonceSize)),
	)
}

// FileKey decodes the request. Call Validate first.
func (r *FileKeyRequest) FileKey() (cryptoDomain.FileKey, error) {
	return decodeFileKey(r.Key, r.IV)
}

// UnwrapFileKeyRequest carries a KMS-wrapped file key.
type UnwrapFileKeyRequest struct {
	WrappedKey string `json:"wrapped_key"`
}

func (r *UnwrapFileKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.WrappedKey, validation.Required, customValidation.Base64),
	)
}

// ChunkRequest encrypts or decrypts a single file chunk at a position.
type ChunkRequest struct {
	Key   string `json:"key"`
	IV    string `json:"iv"`
	Index uint64 `json:"index"`
	Data  string `json:"data"`
}

// Validate checks key material and bounds the decoded chunk to maxChunkBytes.
func (r *ChunkRequest) Validate(maxChunkBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key, validation.Required, customValidation.Base64Length(cryptoDomain.KeySize)),
		validation.Field(&r.IV, validation.Required, customValidation.Base64Length(cryptoDomain.NonceSize)),
		validation.Field(&r.Data, customValidation.Base64, customValidation.MaxBytes(base64.StdEncoding.EncodedLen(maxChunkBytes))),
	)
}

// Decode returns the file key and chunk bytes. Call Validate first.
func (r *ChunkRequest) Decode() (cryptoDomain.FileKey, []byte, error) {
	fileKey, err := decodeFileKey(r.Key, r.IV)
	if err != nil {
		return cryptoDomain.FileKey{}, nil, err
	}
	data, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return cryptoDomain.FileKey{}, nil, cryptoDomain.ErrMalformedInput
	}
	return fileKey, data, nil
}

func decodeFileKey(key, iv string) (cryptoDomain.FileKey, error) {
	k, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return cryptoDomain.FileKey{}, cryptoDomain.ErrMalformedInput
	}
	n, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return cryptoDomain.FileKey{}, cryptoDomain.ErrMalformedInput
	}
	fileKey := cryptoDomain.FileKey{Key: k, IV: n}
	if err := fileKey.Validate(); err != nil {
		return cryptoDomain.FileKey{}, err
	}
	return fileKey, nil
}
