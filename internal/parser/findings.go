package parser

import (
	"strings"

	"copilot/internal/domain"
)

// tagMatch is one delimiter occurrence in the scanned text.
type tagMatch struct {
	severity domain.Severity
	start    int
	end      int
}

// nextTag finds the earliest occurrence of any severity tag at or after from.
func nextTag(text string, from int) (tagMatch, bool) {
	best := tagMatch{start: -1}
	for _, sev := range domain.Severities {
		tag := sev.Tag()
		idx := strings.Index(text[from:], tag)
		if idx < 0 {
			continue
		}
		idx += from
		if best.start < 0 || idx < best.start {
			best = tagMatch{severity: sev, start: idx, end: idx + len(tag)}
		}
	}
	return best, best.start >= 0
}

// ParseFindings splits text on the literal tags [Risk - High],
// [Warning - Medium] and [Pass]. Each finding's content runs from its tag to
// the next tag or end of text; the first line is the title and the rest, trimmed,
// is the body. Text before the first tag is discarded, as are segments that are
// blank after trimming. Near-miss tags are not delimiters and stay in the body
// of the preceding finding.
func ParseFindings(text string) []domain.Finding {
	findings := []domain.Finding{}
	cur, ok := nextTag(text, 0)
	for ok {
		next, found := nextTag(text, cur.end)
		segEnd := len(text)
		if found {
			segEnd = next.start
		}
		if f, keep := buildFinding(cur.severity, text[cur.end:segEnd]); keep {
			findings = append(findings, f)
		}
		cur, ok = next, found
	}
	return findings
}

func buildFinding(sev domain.Severity, segment string) (domain.Finding, bool) {
	content := strings.TrimSpace(segment)
	if content == "" {
		return domain.Finding{}, false
	}
	title, body, _ := strings.Cut(content, "\n")
	return domain.Finding{
		Severity: sev,
		Title:    strings.TrimSpace(title),
		Body:     strings.TrimSpace(body),
	}, true
}
