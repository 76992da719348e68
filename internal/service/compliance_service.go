package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"copilot/internal/catalog"
	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/parser"
	"copilot/internal/port"
	"copilot/internal/prompt"
)

// ScanInput is the DTO for compliance scan requests.
type ScanInput struct {
	Upload   UploadInput
	Standard string
}

// ComplianceService defines the compliance scan contract.
type ComplianceService interface {
	Scan(ctx context.Context, sess *domain.Session, input ScanInput) (*domain.ScanResult, error)
}

type complianceService struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	extractor port.DocumentExtractor
	model     port.ModelGateway
	records   port.RecordStore
	logger    *zap.Logger
}

// NewComplianceService creates a new ComplianceService implementation.
func NewComplianceService(
	cfg *config.Config,
	cat *catalog.Catalog,
	extractor port.DocumentExtractor,
	model port.ModelGateway,
	records port.RecordStore,
	logger *zap.Logger,
) ComplianceService {
	return &complianceService{
		cfg:       cfg,
		catalog:   cat,
		extractor: extractor,
		model:     model,
		records:   records,
		logger:    nopIfNil(logger),
	}
}

// Scan extracts the document text, audits it as the chosen standard's expert
// and splits the model's report into findings. The session keeps the result
// only when every step succeeded.
func (s *complianceService) Scan(ctx context.Context, sess *domain.Session, input ScanInput) (*domain.ScanResult, error) {
	if err := s.cfg.GCP.RequireBindings(); err != nil {
		return nil, err
	}

	standard, err := s.catalog.Standard(input.Standard)
	if err != nil {
		return nil, err
	}

	mimeType, err := ValidateUpload(input.Upload, s.cfg.Upload.MaxBytes())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileName: input.Upload.FileName,
		Content:  input.Upload.Content,
		MIMEType: mimeType,
	})
	if err != nil {
		s.logger.Warn("compliance scan: extraction failed", zap.String("file", input.Upload.FileName), zap.Error(err))
		return nil, err
	}
	if err := RequireDocumentText(text, s.cfg.Upload.MinTextChars); err != nil {
		s.logger.Warn("compliance scan: document has no usable text", zap.String("file", input.Upload.FileName), zap.Int("chars", len(text)))
		return nil, err
	}

	report, err := s.model.Generate(ctx, prompt.BuildComplianceAudit(standard.ExpertPersona, text))
	if err != nil {
		s.logger.Warn("compliance scan: model call failed", zap.String("file", input.Upload.FileName), zap.Error(err))
		return nil, err
	}

	report = parser.Sanitize(report)
	if report == "" {
		s.logger.Warn("compliance scan: empty model response", zap.String("file", input.Upload.FileName))
		return nil, domain.ErrEmptyResponse
	}

	findings := parser.ParseFindings(report)
	result := &domain.ScanResult{
		SourceName: input.Upload.FileName,
		Standard:   standard.Name,
		Report:     report,
		Findings:   findings,
		Summary:    domain.Summarize(findings),
	}

	result.RecordID = saveRecord(ctx, s.records, s.logger, port.CollectionScanHistory, map[string]any{
		"source_name": result.SourceName,
		"standard":    result.Standard,
		"report":      result.Report,
		"summary":     result.Summary,
	})

	s.logger.Info("compliance scan completed",
		zap.String("file", result.SourceName),
		zap.String("standard", standard.Key),
		zap.Int("findings", result.Summary.Total),
		zap.Int("high_risk", result.Summary.HighRisk),
		zap.Duration("elapsed", time.Since(start)),
	)

	if sess != nil {
		sess.Standard = standard.Key
		sess.LastScan = result
	}
	return result, nil
}
