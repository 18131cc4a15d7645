package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	chatDomain "github.com/allisson/chatcrypt/internal/chat/domain"
	chatUseCase "github.com/allisson/chatcrypt/internal/chat/usecase"
	"github.com/allisson/chatcrypt/internal/chat/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "chat", operation, status).Once()
	m.On("RecordDuration", ctx, "chat", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestChatUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Send_Success", func(t *testing.T) {
		next := &mocks.MockChatUseCase{}
		m := &mockBusinessMetrics{}
		msg := &chatDomain.Message{ID: uuid.Must(uuid.NewV7())}
		next.On("Send", ctx, "alice", "bob", "hi").Return(msg, nil)
		expectMetrics(m, ctx, "message_send", "success")

		got, err := chatUseCase.NewChatUseCaseWithMetrics(next, m).Send(ctx, "alice", "bob", "hi")
		require.NoError(t, err)
		assert.Equal(t, msg, got)
		m.AssertExpectations(t)
	})

	t.Run("List_Error", func(t *testing.T) {
		next := &mocks.MockChatUseCase{}
		m := &mockBusinessMetrics{}
		next.On("List", ctx, "alice", "", 0, 50).Return(nil, errors.New("db down"))
		expectMetrics(m, ctx, "message_list", "error")

		_, err := chatUseCase.NewChatUseCaseWithMetrics(next, m).List(ctx, "alice", "", 0, 50)
		assert.Error(t, err)
		m.AssertExpectations(t)
	})

	t.Run("DecryptStored_Error", func(t *testing.T) {
		next := &mocks.MockChatUseCase{}
		m := &mockBusinessMetrics{}
		id := uuid.Must(uuid.NewV7())
		next.On("DecryptStored", ctx, id, "carol").Return("", chatDomain.ErrNotParticipant)
		expectMetrics(m, ctx, "message_decrypt_stored", "error")

		_, err := chatUseCase.NewChatUseCaseWithMetrics(next, m).DecryptStored(ctx, id, "carol")
		assert.ErrorIs(t, err, chatDomain.ErrNotParticipant)
		m.AssertExpectations(t)
	})
}
