// Package mocks provides mock implementations of the chat use case for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	chatUseCase "github.com/allisson/chatcrypt/internal/chat/usecase"
)

// MockChatUseCase is a mock implementation of ChatUseCase.
type MockChatUseCase struct {
	mock.Mock
}

func (m *MockChatUseCase) Send(
	ctx context.Context,
	senderID, recipientID, plaintext string,
) (*chatDomain.Message, error) {
	args := m.Called(ctx, senderID, recipientID, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatDomain.Message), args.Error(1)
}

func (m *MockChatUseCase) List(
	ctx context.Context,
	userID, peerID string,
	offset, limit int,
) ([]*chatDomain.Message, error) {
	args := m.Called(ctx, userID, peerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chatDomain.Message), args.Error(1)
}

func (m *MockChatUseCase) DecryptStored(ctx context.Context, id uuid.UUID, userID string) (string, error) {
	args := m.Called(ctx, id, userID)
	return args.String(0), args.Error(1)
}

var _ chatUseCase.ChatUseCase = (*MockChatUseCase)(nil)
