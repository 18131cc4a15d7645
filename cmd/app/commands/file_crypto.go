package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"

	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
)

// FileKeyFlags selects the file key: either key and iv in base64, or a KMS-wrapped key.
type FileKeyFlags struct {
	Key        string
	IV         string
	WrappedKey string
}

func (f FileKeyFlags) resolve(ctx context.Context, fileUseCase cryptoUseCase.FileUseCase) (cryptoDomain.FileKey, error) {
	if f.WrappedKey != "" {
		if f.Key != "" || f.IV != "" {
			return cryptoDomain.FileKey{}, fmt.Errorf("--wrapped-key cannot be combined with --key or --iv")
		}
		wrapped, err := base64.StdEncoding.DecodeString(f.WrappedKey)
		if err != nil {
			return cryptoDomain.FileKey{}, fmt.Errorf("invalid --wrapped-key: %w", err)
		}
		return fileUseCase.UnwrapFileKey(ctx, wrapped)
	}
	if f.Key == "" || f.IV == "" {
		return cryptoDomain.FileKey{}, fmt.Errorf("either --wrapped-key or both --key and --iv are required")
	}
	return parseFileKey(f.Key, f.IV)
}

// RunEncryptFile encrypts inputPath into the framed stream format at outputPath.
func RunEncryptFile(
	ctx context.Context,
	fileUseCase cryptoUseCase.FileUseCase,
	logger *slog.Logger,
	keyFlags FileKeyFlags,
	inputPath, outputPath string,
) error {
	return runFileStream(ctx, fileUseCase.EncryptStream, fileUseCase, logger, keyFlags, inputPath, outputPath, "encrypted")
}

// RunDecryptFile reverses RunEncryptFile. A tampered or truncated input leaves no output file.
func RunDecryptFile(
	ctx context.Context,
	fileUseCase cryptoUseCase.FileUseCase,
	logger *slog.Logger,
	keyFlags FileKeyFlags,
	inputPath, outputPath string,
) error {
	return runFileStream(ctx, fileUseCase.DecryptStream, fileUseCase, logger, keyFlags, inputPath, outputPath, "decrypted")
}

type streamFunc func(ctx context.Context, r io.Reader, w io.Writer, fileKey cryptoDomain.FileKey) error

func runFileStream(
	ctx context.Context,
	stream streamFunc,
	fileUseCase cryptoUseCase.FileUseCase,
	logger *slog.Logger,
	keyFlags FileKeyFlags,
	inputPath, outputPath, verb string,
) (err error) {
	fileKey, err := keyFlags.resolve(ctx, fileUseCase)
	if err != nil {
		return err
	}
	defer fileKey.Zero()

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(outputPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		closeErr := out.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output: %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(outputPath)
		}
	}()

	if err := stream(ctx, in, out, fileKey); err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	logger.Info("file "+verb, slog.String("input", inputPath), slog.String("output", outputPath))
	return nil
}
