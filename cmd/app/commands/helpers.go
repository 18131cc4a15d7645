// Package commands contains CLI command implementations for chatcrypt.
package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/chatcrypt/internal/app"
	cryptoDomain "github.com/allisson/chatcrypt/internal/crypto/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := m.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// writeOutput prints result as indented JSON when format is "json", otherwise
// as KEY="value" lines taken from envLines in order.
func writeOutput(writer io.Writer, format string, result any, envLines [][2]string) error {
	switch format {
	case "json":
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	case "text", "":
		for _, line := range envLines {
			_, _ = fmt.Fprintf(writer, "%s=%q\n", line[0], line[1])
		}
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	return nil
}

// parseFileKey builds a file key from base64 key and iv flags.
func parseFileKey(keyB64, ivB64 string) (cryptoDomain.FileKey, error) {
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return cryptoDomain.FileKey{}, fmt.Errorf("invalid --key: %w", err)
	}
	iv, err := base64.StdEncoding.DecodeString(ivB64)
	if err != nil {
		return cryptoDomain.FileKey{}, fmt.Errorf("invalid --iv: %w", err)
	}
	fileKey := cryptoDomain.FileKey{Key: key, IV: iv}
	if err := fileKey.Validate(); err != nil {
		return cryptoDomain.FileKey{}, err
	}
	return fileKey, nil
}
