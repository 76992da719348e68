package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
)

// MockChatService is a mock implementation of service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) History(sess *domain.Session) []domain.ChatMessage {
	args := m.Called(sess)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ChatMessage)
}

func (m *MockChatService) Ask(ctx context.Context, sess *domain.Session, question string) (string, error) {
	args := m.Called(ctx, sess, question)
	return args.String(0), args.Error(1)
}
