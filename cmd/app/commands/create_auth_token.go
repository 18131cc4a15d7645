package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/chatcrypt/internal/auth/usecase"
)

type authTokenOutput struct {
	Token string `json:"token"`
	Hash  string `json:"hash"`
}

// RunCreateAuthToken issues a bearer token and prints it with the Argon2id hash
// to append to AUTH_TOKEN_HASHES. The token is not stored anywhere.
func RunCreateAuthToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	issued, err := tokenUseCase.IssueToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to issue auth token: %w", err)
	}

	if err := writeOutput(writer, format, authTokenOutput{Token: issued.Token, Hash: issued.Hash}, [][2]string{
		{"AUTH_TOKEN", issued.Token},
		{"AUTH_TOKEN_HASHES", issued.Hash},
	}); err != nil {
		return err
	}
	if format != "json" {
		_, _ = fmt.Fprintln(writer, "\n# The token is shown only once. Store it securely.")
	}

	logger.Info("auth token issued")
	return nil
}
