package domain

// FileType represents the allowed requirement document types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
)

// AllowedFileTypes maps FileType to the MIME type sent to document extraction.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FileTypeTXT:  "text/plain",
}

// DetectedContentTypes maps binary FileTypes to the content type
// http.DetectContentType reports for a genuine file. DOCX is a zip container.
var DetectedContentTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/zip",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"docx": FileTypeDOCX,
	"txt":  FileTypeTXT,
}

// Severity is the classification of a single compliance finding.
type Severity string

const (
	SeverityHighRisk      Severity = "High-Risk"
	SeverityMediumWarning Severity = "Medium-Warning"
	SeverityPass          Severity = "Pass"
)

// Tag returns the literal delimiter the model emits for the severity.
func (s Severity) Tag() string {
	switch s {
	case SeverityHighRisk:
		return "[Risk - High]"
	case SeverityMediumWarning:
		return "[Warning - Medium]"
	case SeverityPass:
		return "[Pass]"
	default:
		return ""
	}
}

// Label returns the tag text without its enclosing brackets.
func (s Severity) Label() string {
	tag := s.Tag()
	if tag == "" {
		return ""
	}
	return tag[1 : len(tag)-1]
}

// RGB returns the presentation colour for the severity:
// red for High-Risk, amber for Medium-Warning, green for Pass.
func (s Severity) RGB() (r, g, b int) {
	switch s {
	case SeverityHighRisk:
		return 220, 53, 69
	case SeverityMediumWarning:
		return 255, 193, 7
	case SeverityPass:
		return 25, 135, 84
	default:
		return 0, 0, 0
	}
}

// Hex returns RGB as a six digit hex string without the leading '#'.
func (s Severity) Hex() string {
	switch s {
	case SeverityHighRisk:
		return "DC3545"
	case SeverityMediumWarning:
		return "FFC107"
	case SeverityPass:
		return "198754"
	default:
		return "000000"
	}
}

// Severities lists every recognised severity in tag-scan order.
var Severities = []Severity{SeverityHighRisk, SeverityMediumWarning, SeverityPass}

// ExportFormat identifies a downloadable representation.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatXLSX ExportFormat = "xlsx"
	FormatDOCX ExportFormat = "docx"
	FormatPDF  ExportFormat = "pdf"
	FormatTXT  ExportFormat = "txt"
	FormatMD   ExportFormat = "md"
)

// ContentTypes maps export formats to their MIME types.
var ContentTypes = map[ExportFormat]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatPDF:  "application/pdf",
	FormatTXT:  "text/plain; charset=utf-8",
	FormatMD:   "text/markdown; charset=utf-8",
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// IntegrationFailure categorises issue-tracker export failures.
type IntegrationFailure string

const (
	IntegrationAuth     IntegrationFailure = "authentication"
	IntegrationNotFound IntegrationFailure = "not_found"
	IntegrationGeneric  IntegrationFailure = "generic"
)
