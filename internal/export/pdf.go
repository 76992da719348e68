package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"copilot/internal/domain"
)

// ReportHeading is printed at the top of every PDF page.
const ReportHeading = "AI Compliance Co-Pilot Report"

const pdfFont = "dejavu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// FindingsPDF renders an A4 report with a page header and numbered footer,
// the title, then each finding's coloured "tag title" line and its body.
// Text is set in an embedded Unicode font.
func FindingsPDF(findings []domain.Finding, title string, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.CellFormat(0, 10, ReportHeading, "", 1, "C", false, 0, "")
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat(0, 5, "Generated on: "+generatedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, PDFText(title), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	for _, f := range findings {
		r, g, b := f.Severity.RGB()
		pdf.SetFont(pdfFont, "B", 12)
		pdf.SetTextColor(r, g, b)
		pdf.MultiCell(0, 7, PDFText(f.Severity.Tag()+"\n"+f.Title), "", "L", false)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "", 11)
		if body := strings.TrimSpace(f.Body); body != "" {
			pdf.MultiCell(0, 7, PDFText(body), "", "L", false)
		}
		pdf.Ln(5)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PDFText prepares text for the PDF writer, which encodes UTF-16 code units
// of the Basic Multilingual Plane only. Characters beyond it, such as emoji,
// are written as their U+XXXX code point so no text is dropped.
func PDFText(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r > 0xFFFF || r == utf8.RuneError }) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r > 0xFFFF:
			fmt.Fprintf(&sb, "U+%04X", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
