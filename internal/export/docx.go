package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"copilot/internal/domain"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// FindingsDOCX renders a Word document: the title, the generation date, then
// a coloured "tag title" paragraph and the body for each finding.
func FindingsDOCX(findings []domain.Finding, title string, generatedAt time.Time) ([]byte, error) {
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeParagraph(&body, title, runStyle{bold: true, size: 32})
	writeParagraph(&body, "Generated on: "+generatedAt.Format("2006-01-02"), runStyle{italic: true, size: 18})
	for _, f := range findings {
		writeParagraph(&body, f.Severity.Tag()+" "+f.Title, runStyle{bold: true, size: 24, color: f.Severity.Hex()})
		for _, line := range strings.Split(f.Body, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			writeParagraph(&body, line, runStyle{size: 22})
		}
	}
	body.WriteString(`<w:sectPr/></w:body></w:document>`)

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxRels)},
		{"word/document.xml", body.Bytes()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("docx part %s: %w", p.name, err)
		}
		if _, err := w.Write(p.content); err != nil {
			return nil, fmt.Errorf("docx part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx close: %w", err)
	}
	return out.Bytes(), nil
}

type runStyle struct {
	bold   bool
	italic bool
	size   int // half-points
	color  string
}

func writeParagraph(buf *bytes.Buffer, text string, style runStyle) {
	buf.WriteString(`<w:p><w:r><w:rPr>`)
	if style.bold {
		buf.WriteString(`<w:b/>`)
	}
	if style.italic {
		buf.WriteString(`<w:i/>`)
	}
	if style.color != "" {
		fmt.Fprintf(buf, `<w:color w:val="%s"/>`, style.color)
	}
	if style.size > 0 {
		fmt.Fprintf(buf, `<w:sz w:val="%d"/>`, style.size)
	}
	buf.WriteString(`</w:rPr><w:t xml:space="preserve">`)
	_ = xml.EscapeText(buf, []byte(text))
	buf.WriteString(`</w:t></w:r></w:p>`)
}
