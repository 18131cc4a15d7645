package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/chatcrypt/internal/auth/domain"
	authMocks "github.com/allisson/chatcrypt/internal/auth/usecase/mocks"
	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFileUseCase(t *testing.T, withKMS bool) cryptoUseCase.FileUseCase {
	t.Helper()
	var keeper cryptoDomain.KMSKeeper
	if withKMS {
		keyURI, err := cryptoService.NewLocalKeyURI()
		require.NoError(t, err)
		keeper, err = cryptoService.NewKMSService().OpenKeeper(context.Background(), keyURI)
		require.NoError(t, err)
		t.Cleanup(func() { _ = keeper.Close() })
	}
	fileCipher := cryptoService.NewFileCipher(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
	return cryptoUseCase.NewFileUseCase(fileCipher, keeper, 16)
}

func TestRunCreateAuthToken(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		uc := &authMocks.MockTokenUseCase{}
		uc.On("IssueToken", ctx).Return(&authDomain.IssuedToken{Token: "tok", Hash: "$argon2id$hash"}, nil)

		var out bytes.Buffer
		require.NoError(t, RunCreateAuthToken(ctx, uc, discardLogger(), &out, "text"))
		assert.Contains(t, out.String(), `AUTH_TOKEN="tok"`)
		assert.Contains(t, out.String(), `AUTH_TOKEN_HASHES="$argon2id$hash"`)
	})

	t.Run("json", func(t *testing.T) {
		uc := &authMocks.MockTokenUseCase{}
		uc.On("IssueToken", ctx).Return(&authDomain.IssuedToken{Token: "tok", Hash: "h"}, nil)

		var out bytes.Buffer
		require.NoError(t, RunCreateAuthToken(ctx, uc, discardLogger(), &out, "json"))
		var got authTokenOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, authTokenOutput{Token: "tok", Hash: "h"}, got)
	})

	t.Run("issue-error", func(t *testing.T) {
		uc := &authMocks.MockTokenUseCase{}
		uc.On("IssueToken", ctx).Return(nil, errors.New("entropy exhausted"))

		err := RunCreateAuthToken(ctx, uc, discardLogger(), io.Discard, "text")
		assert.ErrorContains(t, err, "failed to issue auth token")
	})

	t.Run("invalid-format", func(t *testing.T) {
		uc := &authMocks.MockTokenUseCase{}
		uc.On("IssueToken", ctx).Return(&authDomain.IssuedToken{Token: "tok", Hash: "h"}, nil)

		err := RunCreateAuthToken(ctx, uc, discardLogger(), io.Discard, "yaml")
		assert.ErrorContains(t, err, "invalid format")
	})
}

func TestRunCreateKMSKey(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunCreateKMSKey(discardLogger(), &out, "json"))

	var got kmsKeyOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.True(t, strings.HasPrefix(got.KMSKeyURI, "base64key://"))

	keeper, err := cryptoService.NewKMSService().OpenKeeper(context.Background(), got.KMSKeyURI)
	require.NoError(t, err)
	assert.NoError(t, keeper.Close())
}

func TestRunGenerateFileKey(t *testing.T) {
	ctx := context.Background()

	t.Run("plain", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunGenerateFileKey(ctx, newFileUseCase(t, false), discardLogger(), &out, false, "json"))

		var got fileKeyOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		_, err := parseFileKey(got.Key, got.IV)
		assert.NoError(t, err)
		assert.Empty(t, got.WrappedKey)
	})

	t.Run("wrap-without-kms", func(t *testing.T) {
		err := RunGenerateFileKey(ctx, newFileUseCase(t, false), discardLogger(), io.Discard, true, "text")
		assert.ErrorIs(t, err, cryptoDomain.ErrKMSNotConfigured)
	})

	t.Run("wrapped", func(t *testing.T) {
		fileUseCase := newFileUseCase(t, true)
		var out bytes.Buffer
		require.NoError(t, RunGenerateFileKey(ctx, fileUseCase, discardLogger(), &out, true, "json"))

		var got fileKeyOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		fileKey, err := FileKeyFlags{WrappedKey: got.WrappedKey}.resolve(ctx, fileUseCase)
		require.NoError(t, err)
		assert.Equal(t, got.Key, base64.StdEncoding.EncodeToString(fileKey.Key))
	})
}

func TestFileKeyFlags(t *testing.T) {
	ctx := context.Background()
	fileUseCase := newFileUseCase(t, false)

	_, err := FileKeyFlags{}.resolve(ctx, fileUseCase)
	assert.ErrorContains(t, err, "required")

	_, err = FileKeyFlags{Key: "a", WrappedKey: "b"}.resolve(ctx, fileUseCase)
	assert.ErrorContains(t, err, "cannot be combined")

	_, err = FileKeyFlags{Key: "!!", IV: "AAAA"}.resolve(ctx, fileUseCase)
	assert.ErrorContains(t, err, "invalid --key")

	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = FileKeyFlags{Key: short, IV: short}.resolve(ctx, fileUseCase)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
}

func TestRunEncryptDecryptFile(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	fileUseCase := newFileUseCase(t, false)
	dir := t.TempDir()

	material, err := fileUseCase.GenerateFileKey(ctx)
	require.NoError(t, err)
	flags := FileKeyFlags{
		Key: base64.StdEncoding.EncodeToString(material.FileKey.Key),
		IV:  base64.StdEncoding.EncodeToString(material.FileKey.IV),
	}

	plainPath := filepath.Join(dir, "photo.jpg")
	encPath := filepath.Join(dir, "photo.jpg.enc")
	decPath := filepath.Join(dir, "photo.out.jpg")
	content := bytes.Repeat([]byte("chatcrypt "), 10)
	require.NoError(t, os.WriteFile(plainPath, content, 0o600))

	require.NoError(t, RunEncryptFile(ctx, fileUseCase, logger, flags, plainPath, encPath))
	require.NoError(t, RunDecryptFile(ctx, fileUseCase, logger, flags, encPath, decPath))

	decrypted, err := os.ReadFile(decPath)
	require.NoError(t, err)
	assert.Equal(t, content, decrypted)

	t.Run("refuses-to-overwrite", func(t *testing.T) {
		err := RunEncryptFile(ctx, fileUseCase, logger, flags, plainPath, encPath)
		assert.ErrorContains(t, err, "failed to create output")
	})

	t.Run("truncated-input-leaves-no-output", func(t *testing.T) {
		encrypted, err := os.ReadFile(encPath)
		require.NoError(t, err)
		truncPath := filepath.Join(dir, "truncated.enc")
		require.NoError(t, os.WriteFile(truncPath, encrypted[:len(encrypted)-10], 0o600))

		outPath := filepath.Join(dir, "truncated.out")
		err = RunDecryptFile(ctx, fileUseCase, logger, flags, truncPath, outPath)
		require.Error(t, err)
		_, statErr := os.Stat(outPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing-input", func(t *testing.T) {
		err := RunEncryptFile(ctx, fileUseCase, logger, flags, filepath.Join(dir, "nope"), filepath.Join(dir, "x"))
		assert.ErrorContains(t, err, "failed to open input")
	})
}

type stubOutboxUseCase struct {
	err error
}

func (s *stubOutboxUseCase) Start(ctx context.Context) error {
	<-ctx.Done()
	if s.err != nil {
		return s.err
	}
	return ctx.Err()
}

func (s *stubOutboxUseCase) ProcessEvents(ctx context.Context) error {
	return nil
}

func TestRunOutboxWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, RunOutboxWorker(ctx, &stubOutboxUseCase{}, discardLogger()))

	failing := &stubOutboxUseCase{err: errors.New("db gone")}
	assert.EqualError(t, RunOutboxWorker(ctx, failing, discardLogger()), "db gone")
}
