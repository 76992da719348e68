package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/parser"
	"copilot/internal/port"
	"copilot/internal/prompt"
)

// TestCaseService defines the test-case generation contract.
type TestCaseService interface {
	Generate(ctx context.Context, sess *domain.Session, upload UploadInput) (*domain.TestSuite, error)
	ExportToTracker(ctx context.Context, sess *domain.Session, target port.IssueTarget) (*domain.ExportSummary, error)
}

type testCaseService struct {
	cfg       *config.Config
	extractor port.DocumentExtractor
	model     port.ModelGateway
	records   port.RecordStore
	tracker   port.IssueTracker
	logger    *zap.Logger
}

// NewTestCaseService creates a new TestCaseService implementation.
func NewTestCaseService(
	cfg *config.Config,
	extractor port.DocumentExtractor,
	model port.ModelGateway,
	records port.RecordStore,
	tracker port.IssueTracker,
	logger *zap.Logger,
) TestCaseService {
	return &testCaseService{
		cfg:       cfg,
		extractor: extractor,
		model:     model,
		records:   records,
		tracker:   tracker,
		logger:    nopIfNil(logger),
	}
}

func (s *testCaseService) Generate(ctx context.Context, sess *domain.Session, upload UploadInput) (*domain.TestSuite, error) {
	if err := s.cfg.GCP.RequireBindings(); err != nil {
		return nil, err
	}

	mimeType, err := ValidateUpload(upload, s.cfg.Upload.MaxBytes())
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileName: upload.FileName,
		Content:  upload.Content,
		MIMEType: mimeType,
	})
	if err != nil {
		s.logger.Warn("test case generation: extraction failed", zap.String("file", upload.FileName), zap.Error(err))
		return nil, err
	}
	if err := RequireDocumentText(text, s.cfg.Upload.MinTextChars); err != nil {
		s.logger.Warn("test case generation: document has no usable text", zap.String("file", upload.FileName), zap.Int("chars", len(text)))
		return nil, err
	}

	raw, err := s.model.Generate(ctx, prompt.BuildTestCases(text))
	if err != nil {
		s.logger.Warn("test case generation: model call failed", zap.String("file", upload.FileName), zap.Error(err))
		return nil, err
	}

	table, err := parser.ParseTabular(parser.Sanitize(raw))
	if err != nil {
		s.logger.Warn("test case generation: malformed model output", zap.String("file", upload.FileName), zap.Error(err))
		return nil, err
	}

	suite := &domain.TestSuite{
		SourceName: upload.FileName,
		Table:      table,
		Metrics:    SuiteMetrics(table),
	}
	suite.RecordID = saveRecord(ctx, s.records, s.logger, port.CollectionTestSuites, map[string]any{
		"source_name": suite.SourceName,
		"test_cases":  suite.Table,
		"metrics":     suite.Metrics,
	})

	s.logger.Info("test cases generated",
		zap.String("file", suite.SourceName),
		zap.Int("total", suite.Metrics.Total),
	)

	if sess != nil {
		sess.LastTestSuite = suite
	}
	return suite, nil
}

// SuiteMetrics counts records whose type column contains "positive",
// "negative" or "edge", ignoring case. Non-string types match nothing.
func SuiteMetrics(table *domain.Table) domain.TestSuiteMetrics {
	m := domain.TestSuiteMetrics{Total: table.Len()}
	for i := 0; i < table.Len(); i++ {
		kind, ok := table.Cell(i, "type").Str()
		if !ok {
			continue
		}
		kind = strings.ToLower(kind)
		switch {
		case strings.Contains(kind, "positive"):
			m.Positive++
		case strings.Contains(kind, "negative"):
			m.Negative++
		case strings.Contains(kind, "edge"):
			m.Edge++
		}
	}
	return m
}

// ExportToTracker creates one issue per test case of the session's last suite.
func (s *testCaseService) ExportToTracker(ctx context.Context, sess *domain.Session, target port.IssueTarget) (*domain.ExportSummary, error) {
	if sess == nil || sess.LastTestSuite == nil || sess.LastTestSuite.Table.Len() == 0 {
		return nil, domain.ErrNothingToExport
	}

	target.ServerURL = strings.TrimRight(strings.TrimSpace(target.ServerURL), "/")
	target.Email = strings.TrimSpace(target.Email)
	target.ProjectKey = strings.TrimSpace(target.ProjectKey)
	if strings.TrimSpace(target.IssueType) == "" {
		target.IssueType = s.cfg.Jira.DefaultIssueType
	}

	var missing []string
	if target.ServerURL == "" {
		missing = append(missing, "server_url")
	}
	if target.Email == "" {
		missing = append(missing, "email")
	}
	if target.APIToken == "" {
		missing = append(missing, "api_token")
	}
	if target.ProjectKey == "" {
		missing = append(missing, "project_key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingIntegration, strings.Join(missing, ", "))
	}

	summary, err := s.tracker.ExportTestCases(ctx, sess.LastTestSuite.Table, target)
	if err != nil {
		s.logger.Warn("issue tracker export failed", zap.String("project", target.ProjectKey), zap.Error(err))
		return nil, err
	}
	s.logger.Info("test cases exported to issue tracker",
		zap.String("project", summary.ProjectKey),
		zap.Int("created", summary.Created),
	)
	return summary, nil
}
