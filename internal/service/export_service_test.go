package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/export"
	"copilot/internal/parser"
	"copilot/internal/port"
	"copilot/internal/service"
	"copilot/mocks"
)

func scannedSession(t *testing.T) *domain.Session {
	t.Helper()
	sess := newSession()
	findings := parser.ParseFindings(twoFindingReport)
	sess.LastScan = &domain.ScanResult{SourceName: "intake prd.pdf", Findings: findings, Summary: domain.Summarize(findings)}
	return sess
}

func TestExportService_Findings(t *testing.T) {
	cfg := testConfig()
	svc := service.NewExportService(nil, &cfg.Storage, nil)

	file, err := svc.Findings(scannedSession(t), domain.FormatTXT)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(file.FileName, "compliance_report_intake_prd_"))
	assert.True(t, strings.HasSuffix(file.FileName, ".txt"))
	assert.Equal(t, "text/plain; charset=utf-8", file.ContentType)
	assert.Equal(t, "[Risk - High] Missing consent\nNo consent flow is described.\n\n[Pass] Encryption\nAES-256 at rest.", string(file.Data))
}

func TestExportService_Findings_Errors(t *testing.T) {
	cfg := testConfig()
	svc := service.NewExportService(nil, &cfg.Storage, nil)

	_, err := svc.Findings(newSession(), domain.FormatPDF)
	assert.ErrorIs(t, err, domain.ErrNothingToExport)

	_, err = svc.Findings(scannedSession(t), domain.FormatCSV)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExportService_TestCasesAndSynthetic(t *testing.T) {
	cfg := testConfig()
	svc := service.NewExportService(nil, &cfg.Storage, nil)
	table, err := parser.ParseTabular(`[{"id":"TC001","type":"positive"}]`)
	require.NoError(t, err)

	sess := newSession()
	sess.LastTestSuite = &domain.TestSuite{SourceName: "prd.docx", Table: table}
	sess.LastDataset = &domain.SyntheticDataset{Table: table}

	file, err := svc.TestCases(sess, domain.FormatCSV)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, export.BOM))
	assert.True(t, strings.HasPrefix(file.FileName, "test_cases_prd_"))

	file, err = svc.Synthetic(sess, domain.FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.FileName, "synthetic_data_"))
	assert.Equal(t, "application/json", file.ContentType)

	_, err = svc.Synthetic(newSession(), domain.FormatJSON)
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

func TestExportService_Archive(t *testing.T) {
	cfg := testConfig()
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(storage, &cfg.Storage, nil)
	sess := newSession()
	file := &service.ExportFile{FileName: "report.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
	key := "exports/" + sess.ID.String() + "/report.pdf"

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "copilot-exports" && in.Key == key && in.Size == 8 && in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{Location: "s3://copilot-exports/" + key}, nil)
	storage.On("GetPresignedURL", mock.Anything, "copilot-exports", key, int64(3600)).Return("https://signed.example/report.pdf", nil)

	archived, err := svc.Archive(context.Background(), sess, file)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/report.pdf", archived.URL)
	assert.Equal(t, int64(3600), archived.ExpiresIn)
	storage.AssertExpectations(t)
}

func TestExportService_Archive_PresignFailureRemovesObject(t *testing.T) {
	cfg := testConfig()
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(storage, &cfg.Storage, nil)
	sess := newSession()

	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("signer unavailable"))
	storage.On("Delete", mock.Anything, "copilot-exports", "exports/"+sess.ID.String()+"/r.json").Return(nil)

	_, err := svc.Archive(context.Background(), sess, &service.ExportFile{FileName: "r.json", Data: []byte("[]")})
	require.Error(t, err)
	storage.AssertExpectations(t)
}

func TestExportService_Archive_Disabled(t *testing.T) {
	svc := service.NewExportService(nil, &config.StorageConfig{}, nil)
	_, err := svc.Archive(context.Background(), newSession(), &service.ExportFile{FileName: "x.csv"})
	assert.ErrorIs(t, err, domain.ErrArchiveDisabled)
}
