package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	outboxUseCase "github.com/allisson/chatcrypt/internal/outbox/usecase"
)

// RunOutboxWorker polls the outbox until ctx is cancelled or SIGINT/SIGTERM arrives.
func RunOutboxWorker(ctx context.Context, useCase outboxUseCase.UseCase, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting outbox worker")
	err := useCase.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("outbox worker stopped")
	return nil
}
