package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
	"copilot/internal/port"
	"copilot/internal/service"
)

// MockTestCaseService is a mock implementation of service.TestCaseService.
type MockTestCaseService struct {
	mock.Mock
}

func (m *MockTestCaseService) Generate(ctx context.Context, sess *domain.Session, upload service.UploadInput) (*domain.TestSuite, error) {
	args := m.Called(ctx, sess, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestSuite), args.Error(1)
}

func (m *MockTestCaseService) ExportToTracker(ctx context.Context, sess *domain.Session, target port.IssueTarget) (*domain.ExportSummary, error) {
	args := m.Called(ctx, sess, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportSummary), args.Error(1)
}
