package port

import (
	"context"

	"copilot/internal/domain"
)

// IssueTarget identifies the tracker project test cases are exported to.
type IssueTarget struct {
	ServerURL  string `json:"server_url"`
	Email      string `json:"email"`
	APIToken   string `json:"api_token"`
	ProjectKey string `json:"project_key"`
	IssueType  string `json:"issue_type"`
}

// IssueTracker creates one issue per test-case record. Failures are
// *domain.IntegrationError.
type IssueTracker interface {
	ExportTestCases(ctx context.Context, table *domain.Table, target IssueTarget) (*domain.ExportSummary, error)
}
