package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// MockComplianceService is a mock implementation of service.ComplianceService.
type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) Scan(ctx context.Context, sess *domain.Session, input service.ScanInput) (*domain.ScanResult, error) {
	args := m.Called(ctx, sess, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScanResult), args.Error(1)
}
