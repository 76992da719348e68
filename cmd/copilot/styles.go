package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"copilot/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#" + domain.SeverityHighRisk.Hex()))
)

// severityStyle colours a finding tag red, amber or green.
func severityStyle(s domain.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#" + s.Hex()))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeFindings prints each finding with its coloured tag, then the summary.
func writeFindings(w io.Writer, findings []domain.Finding, summary domain.FindingSummary) {
	for _, f := range findings {
		fmt.Fprintf(w, "%s %s\n", severityStyle(f.Severity).Render(f.Severity.Tag()), f.Title)
		if f.Body != "" {
			fmt.Fprintln(w, indent(f.Body, "    "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		severityStyle(domain.SeverityHighRisk).Render(fmt.Sprintf("High-Risk: %d", summary.HighRisk)),
		severityStyle(domain.SeverityMediumWarning).Render(fmt.Sprintf("Medium-Warning: %d", summary.MediumWarning)),
		severityStyle(domain.SeverityPass).Render(fmt.Sprintf("Pass: %d", summary.Pass)),
		mutedStyle.Render(fmt.Sprintf("Total: %d", summary.Total)),
	)
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// renderMarkdown renders text for a terminal of the given width. Plain text
// is returned when the renderer cannot be built.
func renderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// terminalWidth returns the width of stdout, or 80 when unknown.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
