package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// MockSyntheticService is a mock implementation of service.SyntheticService.
type MockSyntheticService struct {
	mock.Mock
}

func (m *MockSyntheticService) Generate(ctx context.Context, sess *domain.Session, input service.SyntheticInput) (*domain.SyntheticDataset, error) {
	args := m.Called(ctx, sess, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyntheticDataset), args.Error(1)
}
