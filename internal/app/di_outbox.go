package app

import (
	"fmt"
	"sync"

	outboxRepository "github.com/allisson/chatcrypt/internal/outbox/repository"
	outboxUseCase "github.com/allisson/chatcrypt/internal/outbox/usecase"
)

type outboxComponents struct {
	repo    outboxUseCase.OutboxEventRepository
	useCase outboxUseCase.UseCase

	repoInit    sync.Once
	useCaseInit sync.Once
}

// OutboxRepository returns the outbox event repository for DB_DRIVER.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	return resolve(c, &c.outbox.repoInit, "outboxRepository", &c.outbox.repo,
		func() (outboxUseCase.OutboxEventRepository, error) {
			db, err := c.DB()
			if err != nil {
				return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
			}
			switch c.config.DBDriver {
			case "mysql":
				return outboxRepository.NewMySQLOutboxEventRepository(db), nil
			case "postgres":
				return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
			default:
				return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
			}
		})
}

// OutboxUseCase returns the outbox worker.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	return resolve(c, &c.outbox.useCaseInit, "outboxUseCase", &c.outbox.useCase,
		func() (outboxUseCase.UseCase, error) {
			txManager, err := c.TxManager()
			if err != nil {
				return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
			}
			repo, err := c.OutboxRepository()
			if err != nil {
				return nil, err
			}
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				return nil, err
			}

			logger := c.Logger()
			return outboxUseCase.NewOutboxUseCase(
				outboxUseCase.Config{
					Interval:      c.config.OutboxInterval,
					BatchSize:     c.config.OutboxBatchSize,
					MaxRetries:    c.config.OutboxMaxRetries,
					RetryInterval: c.config.OutboxRetryInterval,
				},
				txManager,
				repo,
				outboxUseCase.NewMessageDeliveryProcessor(logger),
				businessMetrics,
				logger,
			), nil
		})
}
