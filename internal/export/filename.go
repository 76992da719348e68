// Package export renders findings and tables into downloadable files.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"copilot/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BaseName strips the extension from an uploaded file name.
func BaseName(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[:i]
	}
	return fileName
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {prefix}_{sanitized_source}_{YYYY-MM-DD}.{format}
func BuildFilename(prefix, source string, format domain.ExportFormat, now time.Time) string {
	name := SanitizeFilename(prefix + "_" + BaseName(source))
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), format)
}
