package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
)

// MockAssistService is a mock implementation of service.AssistService.
type MockAssistService struct {
	mock.Mock
}

func (m *MockAssistService) InspectPII(ctx context.Context, text string) ([]domain.PIIFinding, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PIIFinding), args.Error(1)
}

func (m *MockAssistService) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	args := m.Called(ctx, audio, languageCode)
	return args.String(0), args.Error(1)
}
