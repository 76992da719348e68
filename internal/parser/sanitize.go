// Package parser turns raw model output into structured records: tagged
// compliance findings or a table decoded from a JSON array of objects.
package parser

import "strings"

const (
	fenceJSON = "```json"
	fence     = "```"
)

// Sanitize strips a leading ```json (or bare ```) fence, a trailing ``` fence
// and surrounding whitespace. Only the edges are touched, and the result is a
// fixed point, so Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		prev := s
		switch {
		case strings.HasPrefix(s, fenceJSON):
			s = strings.TrimSpace(s[len(fenceJSON):])
		case strings.HasPrefix(s, fence):
			s = strings.TrimSpace(s[len(fence):])
		}
		if strings.HasSuffix(s, fence) {
			s = strings.TrimSpace(s[:len(s)-len(fence)])
		}
		if s == prev {
			return s
		}
	}
}
