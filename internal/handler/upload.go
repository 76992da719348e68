package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"copilot/internal/domain"
	"copilot/internal/service"
)

// readUpload reads the named multipart file, refusing anything larger than
// maxBytes. It answers the request itself and returns false on failure.
func readUpload(c *gin.Context, field string, maxBytes int64) (service.UploadInput, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", field+" field is required")
		return service.UploadInput{}, false
	}
	defer func() { _ = file.Close() }()

	if maxBytes > 0 && header.Size > maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return service.UploadInput{}, false
	}

	limit := maxBytes
	if limit <= 0 {
		limit = header.Size
	}
	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		HandleError(c, fmt.Errorf("reading upload: %w", err))
		return service.UploadInput{}, false
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return service.UploadInput{}, false
	}
	return service.UploadInput{FileName: header.Filename, Content: content}, true
}
