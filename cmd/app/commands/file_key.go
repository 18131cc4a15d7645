package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/chatcrypt/internal/crypto/usecase"
)

type fileKeyOutput struct {
	Key        string `json:"key"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	WrappedKey string `json:"wrapped_key,omitempty"`
}

// RunGenerateFileKey prints fresh file key material. With wrap set the key is
// also wrapped by the configured KMS keeper.
func RunGenerateFileKey(
	ctx context.Context,
	fileUseCase cryptoUseCase.FileUseCase,
	logger *slog.Logger,
	writer io.Writer,
	wrap bool,
	format string,
) error {
	material, err := fileUseCase.GenerateFileKey(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate file key: %w", err)
	}
	defer material.FileKey.Zero()

	output := fileKeyOutput{
		Key:  base64.StdEncoding.EncodeToString(material.FileKey.Key),
		IV:   base64.StdEncoding.EncodeToString(material.FileKey.IV),
		Salt: base64.StdEncoding.EncodeToString(material.Salt),
	}
	lines := [][2]string{{"FILE_KEY", output.Key}, {"FILE_IV", output.IV}, {"FILE_SALT", output.Salt}}

	if wrap {
		wrapped, err := fileUseCase.WrapFileKey(ctx, material.FileKey)
		if err != nil {
			return fmt.Errorf("failed to wrap file key: %w", err)
		}
		output.WrappedKey = base64.StdEncoding.EncodeToString(wrapped)
		lines = append(lines, [2]string{"FILE_WRAPPED_KEY", output.WrappedKey})
	}

	if err := writeOutput(writer, format, output, lines); err != nil {
		return err
	}
	logger.Info("file key generated", slog.Bool("wrapped", wrap))
	return nil
}
