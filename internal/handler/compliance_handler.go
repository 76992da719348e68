package handler

import (
	"github.com/gin-gonic/gin"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// ComplianceHandler handles compliance scan endpoints.
type ComplianceHandler struct {
	compliance service.ComplianceService
	exports    service.ExportService
	maxBytes   int64
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(compliance service.ComplianceService, exports service.ExportService, maxBytes int64) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance, exports: exports, maxBytes: maxBytes}
}

// Scan handles POST /api/v1/compliance/scan
// @Summary Run a compliance scan
// @Description Extracts the document text and audits it against the chosen standard.
// @Tags compliance
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param file formData file true "Requirement document (pdf, docx, txt)"
// @Param standard formData string false "Standard key or name" default(india)
// @Success 200 {object} Response{data=domain.ScanResult}
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or unknown standard"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Upstream service error"
// @Failure 503 {object} ErrorResponseBody "Missing configuration"
// @Router /compliance/scan [post]
func (h *ComplianceHandler) Scan(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	upload, ok := readUpload(c, "file", h.maxBytes)
	if !ok {
		return
	}

	result, err := h.compliance.Scan(c.Request.Context(), sess, service.ScanInput{
		Upload:   upload,
		Standard: c.PostForm("standard"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Export handles GET /api/v1/compliance/export
// @Summary Download the last compliance report
// @Tags compliance
// @Produce application/pdf,application/json,text/plain,text/markdown
// @Param X-Session-ID header string true "Session ID"
// @Param format query string false "pdf, docx, json, txt or md" default(pdf)
// @Param archive query bool false "Store in the export archive and return a download URL"
// @Success 200 {file} file
// @Failure 409 {object} ErrorResponseBody "Nothing to export"
// @Router /compliance/export [get]
func (h *ComplianceHandler) Export(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	file, err := h.exports.Findings(sess, exportFormat(c, domain.FormatPDF))
	if err != nil {
		HandleError(c, err)
		return
	}
	sendExport(c, h.exports, sess, file)
}
