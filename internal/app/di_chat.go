package app

import (
	"fmt"
	"sync"

	chatHTTP "github.com/allisson/chatcrypt/internal/chat/http"
	chatRepository "github.com/allisson/chatcrypt/internal/chat/repository"
	chatUseCase "github.com/allisson/chatcrypt/internal/chat/usecase"
)

type chatComponents struct {
	messageRepo chatUseCase.MessageRepository
	useCase     chatUseCase.ChatUseCase
	handler     *chatHTTP.MessageHandler

	messageRepoInit sync.Once
	useCaseInit     sync.Once
	handlerInit     sync.Once
}

// MessageRepository returns the stored message repository for DB_DRIVER.
func (c *Container) MessageRepository() (chatUseCase.MessageRepository, error) {
	return resolve(c, &c.chat.messageRepoInit, "messageRepository", &c.chat.messageRepo,
		func() (chatUseCase.MessageRepository, error) {
			db, err := c.DB()
			if err != nil {
				return nil, fmt.Errorf("failed to get database for message repository: %w", err)
			}
			switch c.config.DBDriver {
			case "mysql":
				return chatRepository.NewMySQLMessageRepository(db), nil
			case "postgres":
				return chatRepository.NewPostgreSQLMessageRepository(db), nil
			default:
				return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
			}
		})
}

// ChatUseCase returns the chat use case.
func (c *Container) ChatUseCase() (chatUseCase.ChatUseCase, error) {
	return resolve(c, &c.chat.useCaseInit, "chatUseCase", &c.chat.useCase, c.initChatUseCase)
}

// ChatHandler returns the stored message HTTP handler.
func (c *Container) ChatHandler() (*chatHTTP.MessageHandler, error) {
	return resolve(c, &c.chat.handlerInit, "chatHandler", &c.chat.handler,
		func() (*chatHTTP.MessageHandler, error) {
			useCase, err := c.ChatUseCase()
			if err != nil {
				return nil, fmt.Errorf("failed to get chat use case for chat handler: %w", err)
			}
			return chatHTTP.NewMessageHandler(useCase, c.config.MaxMessageSize, c.Logger()), nil
		})
}

func (c *Container) initChatUseCase() (chatUseCase.ChatUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for chat use case: %w", err)
	}
	messageRepo, err := c.MessageRepository()
	if err != nil {
		return nil, err
	}
	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, err
	}
	messageUseCase, err := c.MessageUseCase()
	if err != nil {
		return nil, err
	}

	useCase := chatUseCase.NewChatUseCase(txManager, messageRepo, outboxRepo, messageUseCase)
	return withMetrics(c, useCase, chatUseCase.NewChatUseCaseWithMetrics)
}
