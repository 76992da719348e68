package domain

import (
	"time"

	"github.com/google/uuid"
)

// Finding is one tagged compliance statement extracted from model output.
type Finding struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
}

// FindingSummary counts findings per severity.
type FindingSummary struct {
	HighRisk      int `json:"high_risk"`
	MediumWarning int `json:"medium_warning"`
	Pass          int `json:"pass"`
	Total         int `json:"total"`
}

// Summarize counts findings per severity.
func Summarize(findings []Finding) FindingSummary {
	var s FindingSummary
	for _, f := range findings {
		switch f.Severity {
		case SeverityHighRisk:
			s.HighRisk++
		case SeverityMediumWarning:
			s.MediumWarning++
		case SeverityPass:
			s.Pass++
		}
	}
	s.Total = s.HighRisk + s.MediumWarning + s.Pass
	return s
}

// Standard is a regulatory regime the compliance scan can role-play.
type Standard struct {
	Key           string `json:"key" yaml:"key"`
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	ExpertPersona string `json:"expert_persona" yaml:"expert_persona"`
	Color         string `json:"color" yaml:"color"`
}

// DataTemplate is a canned synthetic-data request.
type DataTemplate struct {
	Key    string `json:"key" yaml:"key"`
	Group  string `json:"group" yaml:"group"`
	Name   string `json:"name" yaml:"name"`
	Prompt string `json:"prompt" yaml:"prompt"`
}

// ScanResult is the outcome of one compliance scan.
type ScanResult struct {
	SourceName string         `json:"source_name"`
	Standard   string         `json:"standard"`
	Report     string         `json:"report"`
	Findings   []Finding      `json:"findings"`
	Summary    FindingSummary `json:"summary"`
	RecordID   string         `json:"record_id,omitempty"`
}

// TestSuiteMetrics summarises a generated test suite by test type.
type TestSuiteMetrics struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Edge     int `json:"edge"`
}

// TestSuite is the outcome of one test-case generation.
type TestSuite struct {
	SourceName string           `json:"source_name"`
	Table      *Table           `json:"table"`
	Metrics    TestSuiteMetrics `json:"metrics"`
	RecordID   string           `json:"record_id,omitempty"`
}

// SyntheticDataset is the outcome of one synthetic-data generation.
type SyntheticDataset struct {
	Prompt   string `json:"prompt"`
	RawJSON  string `json:"raw_json"`
	Table    *Table `json:"table"`
	RecordID string `json:"record_id,omitempty"`
}

// ChatMessage is one turn of the co-pilot conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// PIIFinding is one sensitive-data match reported by PII inspection.
type PIIFinding struct {
	Quote      string `json:"quote"`
	InfoType   string `json:"info_type"`
	Likelihood string `json:"likelihood"`
}

// ExportSummary reports the outcome of an issue-tracker export.
type ExportSummary struct {
	ProjectKey string   `json:"project_key"`
	Created    int      `json:"created"`
	IssueKeys  []string `json:"issue_keys"`
	Message    string   `json:"message"`
}

// Session is the per-browser-session state. It is created at session start,
// replaced piecewise by each successful action and discarded at session end.
type Session struct {
	ID            uuid.UUID         `json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Standard      string            `json:"standard"`
	Messages      []ChatMessage     `json:"messages"`
	LastScan      *ScanResult       `json:"last_scan,omitempty"`
	LastTestSuite *TestSuite        `json:"last_test_suite,omitempty"`
	LastDataset   *SyntheticDataset `json:"last_dataset,omitempty"`
}
