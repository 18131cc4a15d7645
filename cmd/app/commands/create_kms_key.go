package commands

import (
	"io"
	"log/slog"

	cryptoService "github.com/allisson/chatcrypt/internal/crypto/service"
)

type kmsKeyOutput struct {
	KMSKeyURI string `json:"kms_key_uri"`
}

// RunCreateKMSKey prints a random base64key:// URI for KMS_KEY_URI.
// Local keys are meant for development; production should use a cloud KMS URI.
func RunCreateKMSKey(logger *slog.Logger, writer io.Writer, format string) error {
	keyURI, err := cryptoService.NewLocalKeyURI()
	if err != nil {
		return err
	}

	if err := writeOutput(writer, format, kmsKeyOutput{KMSKeyURI: keyURI}, [][2]string{
		{"KMS_KEY_URI", keyURI},
	}); err != nil {
		return err
	}

	logger.Info("local kms key generated")
	return nil
}
