package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// exportFormat reads the format query parameter.
func exportFormat(c *gin.Context, fallback domain.ExportFormat) domain.ExportFormat {
	return domain.ExportFormat(strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", string(fallback)))))
}

// sendExport streams the file as an attachment, or archives it and returns a
// presigned URL when archive=true.
func sendExport(c *gin.Context, exports service.ExportService, sess *domain.Session, file *service.ExportFile) {
	if c.Query("archive") == "true" {
		archived, err := exports.Archive(c.Request.Context(), sess, file)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, archived)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
