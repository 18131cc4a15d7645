package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// FileCipherService implements FileCipher.
//
// Chunks are sealed as ciphertext ‖ tag with a nonce derived from the file's base IV
// and the chunk index, and the index is bound as associated data. Streams frame each
// sealed chunk as uint32 length ‖ chunk and end with a zero length followed by an
// authenticated trailer tag, so a truncated stream never decrypts cleanly.
type FileCipherService struct {
	aeadManager AEADManager
	alg         cryptoDomain.Algorithm
}

// NewFileCipher creates a new FileCipherService using alg for every chunk.
func NewFileCipher(aeadManager AEADManager, alg cryptoDomain.Algorithm) *FileCipherService {
	return &FileCipherService{aeadManager: aeadManager, alg: alg}
}

// GenerateFileKey returns a random 256-bit key and 96-bit base IV.
func (f *FileCipherService) GenerateFileKey() (cryptoDomain.FileKey, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return cryptoDomain.FileKey{}, fmt.Errorf("failed to generate file key: %w", err)
	}
	iv := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(iv); err != nil {
		return cryptoDomain.FileKey{}, fmt.Errorf("failed to generate file iv: %w", err)
	}
	return cryptoDomain.FileKey{Key: key, IV: iv}, nil
}

// GenerateSalt returns 128 random bits.
func (f *FileCipherService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// EncryptChunk seals chunk at position index and returns ciphertext ‖ tag.
func (f *FileCipherService) EncryptChunk(chunk, key, iv []byte, index uint64) ([]byte, error) {
	aead, err := f.cipher(key, iv)
	if err != nil {
		return nil, err
	}
	return aead.Seal(cryptoDomain.ChunkNonce(iv, index), chunk, cryptoDomain.ChunkAAD(index))
}

// DecryptChunk opens a ciphertext ‖ tag chunk sealed at position index.
func (f *FileCipherService) DecryptChunk(chunk, key, iv []byte, index uint64) ([]byte, error) {
	aead, err := f.cipher(key, iv)
	if err != nil {
		return nil, err
	}
	if len(chunk) < cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrMalformedInput
	}

	plaintext, err := aead.Decrypt(chunk, cryptoDomain.ChunkNonce(iv, index), cryptoDomain.ChunkAAD(index))
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// EncryptStream reads r in chunkSize pieces and writes the framed ciphertext to w.
func (f *FileCipherService) EncryptStream(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	key cryptoDomain.FileKey,
	chunkSize int,
) error {
	if chunkSize <= 0 {
		return cryptoDomain.ErrInvalidChunkSize
	}
	aead, err := f.cipher(key.Key, key.IV)
	if err != nil {
		return err
	}

	buf := make([]byte, chunkSize)
	var index uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := io.ReadFull(r, buf)
		if n > 0 {
			sealed, err := aead.Seal(cryptoDomain.ChunkNonce(key.IV, index), buf[:n], cryptoDomain.ChunkAAD(index))
			if err != nil {
				return err
			}
			if err := writeFrame(w, sealed); err != nil {
				return err
			}
			index++
		}

		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read plaintext: %w", readErr)
		}
	}

	trailer, err := aead.Seal(cryptoDomain.ChunkNonce(key.IV, index), nil, cryptoDomain.ChunkFinalAAD(index))
	if err != nil {
		return err
	}
	if err := writeFrame(w, nil); err != nil {
		return err
	}
	if _, err := w.Write(trailer); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	return nil
}

// DecryptStream reverses EncryptStream. chunkSize must match the value used to encrypt;
// frames larger than chunkSize plus the tag are rejected as malformed.
func (f *FileCipherService) DecryptStream(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	key cryptoDomain.FileKey,
	chunkSize int,
) error {
	if chunkSize <= 0 {
		return cryptoDomain.ErrInvalidChunkSize
	}
	aead, err := f.cipher(key.Key, key.IV)
	if err != nil {
		return err
	}

	maxFrame := uint32(chunkSize) + cryptoDomain.TagSize
	buf := make([]byte, maxFrame)
	var header [4]byte
	var index uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.ReadFull(r, header[:]); err != nil {
			return readError(err)
		}
		size := binary.BigEndian.Uint32(header[:])

		if size == 0 {
			trailer := buf[:cryptoDomain.TagSize]
			if _, err := io.ReadFull(r, trailer); err != nil {
				return readError(err)
			}
			nonce := cryptoDomain.ChunkNonce(key.IV, index)
			if _, err := aead.Decrypt(trailer, nonce, cryptoDomain.ChunkFinalAAD(index)); err != nil {
				return cryptoDomain.ErrAuthenticationFailed
			}
			return expectEOF(r)
		}

		if size < cryptoDomain.TagSize || size > maxFrame {
			return cryptoDomain.ErrMalformedInput
		}
		frame := buf[:size]
		if _, err := io.ReadFull(r, frame); err != nil {
			return readError(err)
		}

		plaintext, err := aead.Decrypt(frame, cryptoDomain.ChunkNonce(key.IV, index), cryptoDomain.ChunkAAD(index))
		if err != nil {
			return cryptoDomain.ErrAuthenticationFailed
		}
		if _, err := w.Write(plaintext); err != nil {
			return fmt.Errorf("failed to write plaintext: %w", err)
		}
		index++
	}
}

func (f *FileCipherService) cipher(key, iv []byte) (AEAD, error) {
	if len(iv) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	return f.aeadManager.CreateCipher(key, f.alg)
}

func writeFrame(w io.Writer, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// expectEOF rejects any bytes following the stream trailer.
func expectEOF(r io.Reader) error {
	var extra [1]byte
	n, err := io.ReadFull(r, extra[:])
	if n > 0 {
		return cryptoDomain.ErrMalformedInput
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("failed to read ciphertext: %w", err)
}

func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return cryptoDomain.ErrMalformedInput
	}
	return fmt.Errorf("failed to read ciphertext: %w", err)
}
