package usecase

import (
	"context"
	"io"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
	"github.com/allisson/chatcrypt/internal/errors"
)

type fileUseCase struct {
	fileCipher cryptoService.FileCipher
	keeper     cryptoDomain.KMSKeeper
	chunkSize  int
}

// NewFileUseCase creates a FileUseCase. keeper may be nil, in which case key
// wrapping returns ErrKMSNotConfigured.
func NewFileUseCase(
	fileCipher cryptoService.FileCipher,
	keeper cryptoDomain.KMSKeeper,
	chunkSize int,
) FileUseCase {
	return &fileUseCase{
		fileCipher: fileCipher,
		keeper:     keeper,
		chunkSize:  chunkSize,
	}
}

func (f *fileUseCase) GenerateFileKey(ctx context.Context) (*FileKeyMaterial, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileKey, err := f.fileCipher.GenerateFileKey()
	if err != nil {
		return nil, err
	}
	salt, err := f.fileCipher.GenerateSalt()
	if err != nil {
		return nil, err
	}

	return &FileKeyMaterial{FileKey: fileKey, Salt: salt}, nil
}

// WrapFileKey encrypts key ‖ iv with the configured KMS keeper.
func (f *fileUseCase) WrapFileKey(ctx context.Context, fileKey cryptoDomain.FileKey) ([]byte, error) {
	if f.keeper == nil {
		return nil, cryptoDomain.ErrKMSNotConfigured
	}
	if err := fileKey.Validate(); err != nil {
		return nil, err
	}

	plaintext := fileKey.Bytes()
	defer cryptoDomain.Zero(plaintext)

	wrapped, err := f.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to wrap file key")
	}
	return wrapped, nil
}

// UnwrapFileKey reverses WrapFileKey. A ciphertext the keeper rejects is reported
// as ErrAuthenticationFailed.
func (f *fileUseCase) UnwrapFileKey(ctx context.Context, wrapped []byte) (cryptoDomain.FileKey, error) {
	if f.keeper == nil {
		return cryptoDomain.FileKey{}, cryptoDomain.ErrKMSNotConfigured
	}

	plaintext, err := f.keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return cryptoDomain.FileKey{}, cryptoDomain.ErrAuthenticationFailed
	}
	defer cryptoDomain.Zero(plaintext)

	return cryptoDomain.FileKeyFromBytes(plaintext)
}

func (f *fileUseCase) EncryptChunk(
	ctx context.Context,
	chunk []byte,
	fileKey cryptoDomain.FileKey,
	index uint64,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.fileCipher.EncryptChunk(chunk, fileKey.Key, fileKey.IV, index)
}

func (f *fileUseCase) DecryptChunk(
	ctx context.Context,
	chunk []byte,
	fileKey cryptoDomain.FileKey,
	index uint64,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.fileCipher.DecryptChunk(chunk, fileKey.Key, fileKey.IV, index)
}

func (f *fileUseCase) EncryptStream(ctx context.Context, r io.Reader, w io.Writer, fileKey cryptoDomain.FileKey) error {
	return f.fileCipher.EncryptStream(ctx, r, w, fileKey, f.chunkSize)
}

func (f *fileUseCase) DecryptStream(ctx context.Context, r io.Reader, w io.Writer, fileKey cryptoDomain.FileKey) error {
	return f.fileCipher.DecryptStream(ctx, r, w, fileKey, f.chunkSize)
}
