// Package usecase runs the outbox worker: it polls pending events and hands them
// to an EventProcessor inside a transaction.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/chatcrypt/internal/database"
	"github.com/allisson/chatcrypt/internal/metrics"
	"github.com/allisson/chatcrypt/internal/outbox/domain"
)

// Config holds outbox worker configuration.
type Config struct {
	Interval      time.Duration
	BatchSize     int
	MaxRetries    int
	RetryInterval time.Duration
}

// OutboxEventRepository defines outbox event persistence.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int, retryBefore time.Time) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers a single event.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase is the outbox worker.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase implements UseCase.
type OutboxUseCase struct {
	config          Config
	txManager       database.TxManager
	outboxRepo      OutboxEventRepository
	eventProcessor  EventProcessor
	businessMetrics metrics.BusinessMetrics
	logger          *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase. A nil logger discards output.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *OutboxUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &OutboxUseCase{
		config:          config,
		txManager:       txManager,
		outboxRepo:      outboxRepo,
		eventProcessor:  eventProcessor,
		businessMetrics: businessMetrics,
		logger:          logger,
	}
}

// Start polls for pending events every Interval until ctx is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting outbox event processor",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox event processor")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents delivers one batch of pending events. A failed delivery is
// recorded on the event and does not abort the batch.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		retryBefore := time.Now().UTC().Add(-uc.config.RetryInterval)
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize, retryBefore)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		uc.logger.Info("processing events", slog.Int("count", len(events)))

		for _, event := range events {
			start := time.Now()
			err := uc.eventProcessor.Process(ctx, event)
			metrics.Observe(ctx, uc.businessMetrics, "outbox", "event_process", start, err)
			if err != nil {
				uc.logger.Error("failed to process event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", event.EventType),
					slog.Int("retries", event.Retries+1),
					slog.Any("error", err),
				)
				event.MarkFailed(err, uc.config.MaxRetries)
			} else {
				event.MarkProcessed(time.Now().UTC())
			}

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}
