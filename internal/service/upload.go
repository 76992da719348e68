package service

import (
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"copilot/internal/domain"
)

// UploadInput is a requirement document received from a client.
type UploadInput struct {
	FileName string
	Content  []byte
}

// ValidateUpload checks the extension, size and content of an upload and
// returns the MIME type to send to document extraction. Binary formats must
// carry their magic bytes; plain text is accepted in any encoding.
func ValidateUpload(input UploadInput, maxBytes int64) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}

	if len(input.Content) == 0 {
		return "", domain.ErrEmptyDocument
	}
	if maxBytes > 0 && int64(len(input.Content)) > maxBytes {
		return "", domain.ErrFileTooLarge
	}

	if fileType != domain.FileTypeTXT {
		head := input.Content
		if len(head) > 512 {
			head = head[:512]
		}
		if http.DetectContentType(head) != domain.DetectedContentTypes[fileType] {
			return "", domain.ErrUnsupportedFileType
		}
	}

	return domain.AllowedFileTypes[fileType], nil
}

// RequireDocumentText rejects extracted text with fewer than minChars
// non-space characters at either end trimmed.
func RequireDocumentText(text string, minChars int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < minChars {
		return domain.ErrEmptyDocument
	}
	return nil
}
