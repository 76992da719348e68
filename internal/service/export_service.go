package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/export"
	"copilot/internal/port"
)

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ArchivedExport points at an export stored in the archive bucket.
type ArchivedExport struct {
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// ExportService renders the session's latest results and optionally archives them.
type ExportService interface {
	Findings(sess *domain.Session, format domain.ExportFormat) (*ExportFile, error)
	TestCases(sess *domain.Session, format domain.ExportFormat) (*ExportFile, error)
	Synthetic(sess *domain.Session, format domain.ExportFormat) (*ExportFile, error)
	Archive(ctx context.Context, sess *domain.Session, file *ExportFile) (*ArchivedExport, error)
}

type exportService struct {
	storage port.ObjectStorage
	cfg     *config.StorageConfig
	now     func() time.Time
	logger  *zap.Logger
}

// NewExportService creates a new ExportService implementation. storage may be
// nil, in which case Archive reports domain.ErrArchiveDisabled.
func NewExportService(storage port.ObjectStorage, cfg *config.StorageConfig, logger *zap.Logger) ExportService {
	return &exportService{storage: storage, cfg: cfg, now: time.Now, logger: nopIfNil(logger)}
}

func (s *exportService) Findings(sess *domain.Session, format domain.ExportFormat) (*ExportFile, error) {
	if sess == nil || sess.LastScan == nil {
		return nil, domain.ErrNothingToExport
	}
	scan := sess.LastScan
	now := s.now()
	data, err := export.RenderFindings(format, scan.Findings, "Compliance Report: "+scan.SourceName, now)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.BuildFilename("compliance_report", scan.SourceName, format, now),
		ContentType: domain.ContentTypes[format],
		Data:        data,
	}, nil
}

func (s *exportService) TestCases(sess *domain.Session, format domain.ExportFormat) (*ExportFile, error) {
	if sess == nil || sess.LastTestSuite == nil {
		return nil, domain.ErrNothingToExport
	}
	suite := sess.LastTestSuite
	data, err := export.RenderTable(format, suite.Table, "Test Cases")
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.BuildFilename("test_cases", suite.SourceName, format, s.now()),
		ContentType: domain.ContentTypes[format],
		Data:        data,
	}, nil
}

func (s *exportService) Synthetic(sess *domain.Session, format domain.ExportFormat) (*ExportFile, error) {
	if sess == nil || sess.LastDataset == nil {
		return nil, domain.ErrNothingToExport
	}
	data, err := export.RenderTable(format, sess.LastDataset.Table, "Synthetic Data")
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.BuildFilename("synthetic_data", "", format, s.now()),
		ContentType: domain.ContentTypes[format],
		Data:        data,
	}, nil
}

// Archive uploads file under the session's prefix and returns a presigned
// download URL. The object is removed again when presigning fails.
func (s *exportService) Archive(ctx context.Context, sess *domain.Session, file *ExportFile) (*ArchivedExport, error) {
	if s.storage == nil || s.cfg == nil || !s.cfg.Enabled {
		return nil, domain.ErrArchiveDisabled
	}

	key := fmt.Sprintf("exports/%s/%s", sess.ID, file.FileName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Data),
		ContentType: file.ContentType,
		Size:        int64(len(file.Data)),
	})
	if err != nil {
		s.logger.Warn("export archive upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("exportService.Archive: upload: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			s.logger.Warn("failed to remove archived export", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("exportService.Archive: presign: %w", err)
	}

	s.logger.Info("export archived", zap.String("key", key), zap.Int("bytes", len(file.Data)))
	return &ArchivedExport{FileName: file.FileName, URL: url, ExpiresIn: s.cfg.PresignExpiry}, nil
}
