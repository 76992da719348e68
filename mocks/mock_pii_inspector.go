package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
)

// MockPIIInspector is a mock implementation of port.PIIInspector.
type MockPIIInspector struct {
	mock.Mock
}

func (m *MockPIIInspector) Inspect(ctx context.Context, text string) ([]domain.PIIFinding, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PIIFinding), args.Error(1)
}
