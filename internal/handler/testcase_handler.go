package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"copilot/internal/domain"
	"copilot/internal/port"
	"copilot/internal/service"
)

// TestCaseHandler handles test-case generation endpoints.
type TestCaseHandler struct {
	testCases service.TestCaseService
	exports   service.ExportService
	maxBytes  int64
}

// NewTestCaseHandler creates a new TestCaseHandler.
func NewTestCaseHandler(testCases service.TestCaseService, exports service.ExportService, maxBytes int64) *TestCaseHandler {
	return &TestCaseHandler{testCases: testCases, exports: exports, maxBytes: maxBytes}
}

// Generate handles POST /api/v1/testcases/generate
// @Summary Generate test cases from a requirement document
// @Tags testcases
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param file formData file true "Requirement document (pdf, docx, txt)"
// @Success 200 {object} Response{data=domain.TestSuite}
// @Failure 422 {object} ErrorResponseBody "Model output was not valid JSON"
// @Failure 502 {object} ErrorResponseBody "Upstream service error"
// @Router /testcases/generate [post]
func (h *TestCaseHandler) Generate(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	upload, ok := readUpload(c, "file", h.maxBytes)
	if !ok {
		return
	}

	suite, err := h.testCases.Generate(c.Request.Context(), sess, upload)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, suite)
}

// Export handles GET /api/v1/testcases/export
// @Summary Download the last test suite
// @Tags testcases
// @Produce text/csv,application/json
// @Param X-Session-ID header string true "Session ID"
// @Param format query string false "csv, xlsx or json" default(csv)
// @Param archive query bool false "Store in the export archive and return a download URL"
// @Success 200 {file} file
// @Failure 409 {object} ErrorResponseBody "Nothing to export"
// @Router /testcases/export [get]
func (h *TestCaseHandler) Export(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	file, err := h.exports.TestCases(sess, exportFormat(c, domain.FormatCSV))
	if err != nil {
		HandleError(c, err)
		return
	}
	sendExport(c, h.exports, sess, file)
}

// ExportToTracker handles POST /api/v1/testcases/jira
// @Summary Create one Jira issue per test case
// @Tags testcases
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param request body IssueTrackerRequest true "Jira connection"
// @Success 200 {object} Response{data=domain.ExportSummary}
// @Failure 400 {object} ErrorResponseBody "Missing connection details"
// @Failure 401 {object} ErrorResponseBody "Jira rejected the credentials"
// @Failure 404 {object} ErrorResponseBody "Jira project not found"
// @Router /testcases/jira [post]
func (h *TestCaseHandler) ExportToTracker(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var target port.IssueTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "server_url, email, api_token and project_key are required")
		return
	}

	summary, err := h.testCases.ExportToTracker(c.Request.Context(), sess, target)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}
