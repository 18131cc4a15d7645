package dto

import (
	"encoding/base64"
	"time"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
)

// KeyPairResponse exposes the public half of a key pair.
type KeyPairResponse struct {
	UserID    string    `json:"user_id"`
	PublicKey string    `json:"public_key"`
	CreatedAt time.Time `json:"created_at"`
}

// MapKeyPairToResponse never includes the private key.
func MapKeyPairToResponse(keyPair *cryptoDomain.KeyPair) KeyPairResponse {
	return KeyPairResponse{
		UserID:    keyPair.UserID,
		PublicKey: base64.StdEncoding.EncodeToString(keyPair.PublicKey),
		CreatedAt: keyPair.CreatedAt,
	}
}

type CiphertextResponse struct {
	Ciphertext string `json:"ciphertext"`
}

type PlaintextResponse struct {
	Plaintext string `json:"plaintext"`
}

// FileKeyResponse carries file key material. Salt is only set on generation.
type FileKeyResponse struct {
	Key  string `json:"key"`
	IV   string `json:"iv"`
	Salt string `json:"salt,omitempty"`
}

func MapFileKeyMaterialToResponse(material *cryptoUseCase.FileKeyMaterial) FileKeyResponse {
	resp := MapFileKeyToResponse(material.FileKey)
	resp.Salt = base64.StdEncoding.EncodeToString(material.Salt)
	return resp
}

func MapFileKeyToResponse(fileKey cryptoDomain.FileKey) FileKeyResponse {
	return FileKeyResponse{
		Key: base64.StdEncoding.EncodeToString(fileKey.Key),
		IV:  base64.StdEncoding.EncodeToString(fileKey.IV),
	}
}

type WrappedFileKeyResponse struct {
	WrappedKey string `json:"wrapped_key"`
}

type ChunkResponse struct {
	Index uint64 `json:"index"`
	Data  string `json:"data"`
}
