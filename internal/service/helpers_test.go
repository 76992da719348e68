package service_test

import (
	"testing"

	"github.com/google/uuid"

	"copilot/internal/catalog"
	"copilot/internal/config"
	"copilot/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		GCP: config.GCPConfig{
			ProjectID:        "demo-project",
			Region:           "asia-south1",
			DocAILocation:    "us",
			DocAIProcessorID: "proc-123",
		},
		Model:   config.ModelConfig{Provider: "vertex", ChatMaxChars: 550, ChatCutChars: 520},
		Upload:  config.UploadConfig{MaxFileSizeMB: 10, MinTextChars: 50},
		Jira:    config.JiraConfig{DefaultIssueType: "Test"},
		Storage: config.StorageConfig{Enabled: true, Bucket: "copilot-exports", PresignExpiry: 3600},
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.MustLoad()
}

func newSession() *domain.Session {
	return &domain.Session{ID: uuid.New()}
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 requirements document body long enough for detection purposes")
}

// extractedText is document text long enough to pass the minimum length check.
const extractedText = "requirements text: The system shall store patient consent records for seven years."

func textContent() []byte {
	return []byte("The system shall store patient consent records for seven years.")
}
