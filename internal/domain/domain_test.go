package domain_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"copilot/internal/domain"
)

func TestSeverity_TagAndLabel(t *testing.T) {
	tests := []struct {
		sev   domain.Severity
		tag   string
		label string
		hex   string
	}{
		{domain.SeverityHighRisk, "[Risk - High]", "Risk - High", "DC3545"},
		{domain.SeverityMediumWarning, "[Warning - Medium]", "Warning - Medium", "FFC107"},
		{domain.SeverityPass, "[Pass]", "Pass", "198754"},
		{domain.Severity("Other"), "", "", "000000"},
	}
	for _, tt := range tests {
		t.Run(string(tt.sev), func(t *testing.T) {
			assert.Equal(t, tt.tag, tt.sev.Tag())
			assert.Equal(t, tt.label, tt.sev.Label())
			assert.Equal(t, tt.hex, tt.sev.Hex())
		})
	}
}

func TestSummarize(t *testing.T) {
	findings := []domain.Finding{
		{Severity: domain.SeverityHighRisk},
		{Severity: domain.SeverityHighRisk},
		{Severity: domain.SeverityMediumWarning},
		{Severity: domain.SeverityPass},
	}
	want := domain.FindingSummary{HighRisk: 2, MediumWarning: 1, Pass: 1, Total: 4}
	if diff := cmp.Diff(want, domain.Summarize(findings)); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.FindingSummary{}, domain.Summarize(nil))
}

func TestUpstreamError_Prefix(t *testing.T) {
	cause := errors.New("429")
	err := domain.NewUpstreamError("gemini", cause, "quota exceeded for %s", "project")
	assert.Equal(t, "Error: quota exceeded for project", err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), domain.ErrorPrefix))
	assert.ErrorIs(t, err, cause)

	already := domain.NewUpstreamError("docai", nil, "Error: processor missing")
	assert.Equal(t, "Error: processor missing", already.Error())
}

func TestIntegrationError_Hints(t *testing.T) {
	auth := &domain.IntegrationError{Kind: domain.IntegrationAuth}
	notFound := &domain.IntegrationError{Kind: domain.IntegrationNotFound}
	generic := &domain.IntegrationError{Kind: domain.IntegrationGeneric}
	assert.Contains(t, auth.Hint(), "API token")
	assert.Contains(t, notFound.Hint(), "project key")
	assert.Contains(t, generic.Hint(), "server URL")
}

func TestConfigurationError(t *testing.T) {
	err := &domain.ConfigurationError{Missing: []string{"GCP_PROJECT_ID", "GCP_REGION"}}
	assert.Equal(t, "missing required configuration: GCP_PROJECT_ID, GCP_REGION", err.Error())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", domain.Truncate("abc", 5))
	assert.Equal(t, "ab...", domain.Truncate("abcdef", 2))
	// "é" is two bytes; the cut backs off to the rune start.
	assert.Equal(t, "a...", domain.Truncate("aéb", 2))
}

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "", domain.Missing().Text())
	assert.Equal(t, "", domain.Null().Text())
	assert.Equal(t, "<b>&", domain.String("<b>&").Text())
	assert.Equal(t, "1.50", domain.Number(json.Number("1.50")).Text())
	assert.Equal(t, "false", domain.Bool(false).Text())

	obj := domain.Object([]domain.Field{
		{Name: "z", Value: domain.Number("1")},
		{Name: "a", Value: domain.Array([]domain.Value{domain.String("x"), domain.Null()})},
	})
	assert.Equal(t, `{"z":1,"a":["x",null]}`, obj.Text())
	assert.Equal(t, domain.KindArray, obj.Get("a").Kind())
	assert.True(t, obj.Get("missing").IsMissing())
}

func TestTable_NilSafe(t *testing.T) {
	var table *domain.Table
	assert.Equal(t, 0, table.Len())
	assert.True(t, table.Cell(0, "a").IsMissing())
}
