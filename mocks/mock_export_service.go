package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Findings(sess *domain.Session, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(sess, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) TestCases(sess *domain.Session, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(sess, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) Synthetic(sess *domain.Session, format domain.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(sess, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) Archive(ctx context.Context, sess *domain.Session, file *service.ExportFile) (*service.ArchivedExport, error) {
	args := m.Called(ctx, sess, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchivedExport), args.Error(1)
}
