package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
	"copilot/internal/port"
)

// MockIssueTracker is a mock implementation of port.IssueTracker.
type MockIssueTracker struct {
	mock.Mock
}

func (m *MockIssueTracker) ExportTestCases(ctx context.Context, table *domain.Table, target port.IssueTarget) (*domain.ExportSummary, error) {
	args := m.Called(ctx, table, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportSummary), args.Error(1)
}
