package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"copilot/internal/domain"
)

// FindingFormats lists the formats a findings report can be rendered to.
var FindingFormats = []domain.ExportFormat{
	domain.FormatPDF, domain.FormatDOCX, domain.FormatJSON, domain.FormatTXT, domain.FormatMD,
}

// RenderFindings renders findings under title in the requested format.
// Findings are written in the order given and never modified.
func RenderFindings(format domain.ExportFormat, findings []domain.Finding, title string, generatedAt time.Time) ([]byte, error) {
	switch format {
	case domain.FormatTXT:
		return FindingsText(findings), nil
	case domain.FormatMD:
		return FindingsMarkdown(findings, title), nil
	case domain.FormatJSON:
		return FindingsJSON(findings)
	case domain.FormatDOCX:
		return FindingsDOCX(findings, title, generatedAt)
	case domain.FormatPDF:
		return FindingsPDF(findings, title, generatedAt)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
}

// details joins title and body the way they appeared after the tag.
func details(f domain.Finding) string {
	if f.Body == "" {
		return f.Title
	}
	return f.Title + "\n" + f.Body
}

// FindingsText writes each finding as "tag title", then its body, with a
// blank line between findings.
func FindingsText(findings []domain.Finding) []byte {
	blocks := make([]string, len(findings))
	for i, f := range findings {
		blocks[i] = f.Severity.Tag() + " " + details(f)
	}
	return []byte(strings.Join(blocks, "\n\n"))
}

// FindingsMarkdown is FindingsText with a document heading and a heading per finding.
func FindingsMarkdown(findings []domain.Finding, title string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", title)
	for _, f := range findings {
		fmt.Fprintf(&buf, "\n### %s %s\n", f.Severity.Tag(), f.Title)
		if f.Body != "" {
			fmt.Fprintf(&buf, "\n%s\n", f.Body)
		}
	}
	return buf.Bytes()
}

type findingJSON struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// FindingsJSON encodes findings as [{"status": ..., "details": ...}] with a
// four space indent. Status is the tag without brackets.
func FindingsJSON(findings []domain.Finding) ([]byte, error) {
	out := make([]findingJSON, len(findings))
	for i, f := range findings {
		out[i] = findingJSON{Status: f.Severity.Label(), Details: details(f)}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encoding findings: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
