package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// SyntheticHandler handles synthetic-data endpoints.
type SyntheticHandler struct {
	synthetic service.SyntheticService
	exports   service.ExportService
}

// NewSyntheticHandler creates a new SyntheticHandler.
func NewSyntheticHandler(synthetic service.SyntheticService, exports service.ExportService) *SyntheticHandler {
	return &SyntheticHandler{synthetic: synthetic, exports: exports}
}

// Generate handles POST /api/v1/synthetic/generate
// @Summary Generate a synthetic dataset
// @Description Uses the prompt, or the named template when the prompt is empty.
// @Tags synthetic
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body SyntheticRequest true "Prompt or template"
// @Success 200 {object} Response{data=domain.SyntheticDataset}
// @Failure 400 {object} ErrorResponseBody "Empty prompt or unknown template"
// @Failure 422 {object} ErrorResponseBody "Model output was not valid JSON"
// @Failure 502 {object} ErrorResponseBody "Upstream service error"
// @Router /synthetic/generate [post]
func (h *SyntheticHandler) Generate(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req SyntheticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "prompt or template is required")
		return
	}

	dataset, err := h.synthetic.Generate(c.Request.Context(), sess, service.SyntheticInput{
		Prompt:   req.Prompt,
		Template: req.Template,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, dataset)
}

// Export handles GET /api/v1/synthetic/export
// @Summary Download the last synthetic dataset
// @Tags synthetic
// @Produce text/csv,application/json
// @Param X-Session-ID header string true "Session ID"
// @Param format query string false "csv, xlsx or json" default(csv)
// @Param archive query bool false "Store in the export archive and return a download URL"
// @Success 200 {file} file
// @Failure 409 {object} ErrorResponseBody "Nothing to export"
// @Router /synthetic/export [get]
func (h *SyntheticHandler) Export(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	file, err := h.exports.Synthetic(sess, exportFormat(c, domain.FormatCSV))
	if err != nil {
		HandleError(c, err)
		return
	}
	sendExport(c, h.exports, sess, file)
}
