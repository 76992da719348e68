package port

import "context"

// ExtractInput carries an uploaded requirement document.
type ExtractInput struct {
	FileName string
	Content  []byte
	MIMEType string
}

// DocumentExtractor converts a document into plain text using a hosted
// document understanding service. Failures are *domain.UpstreamError.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (string, error)
}
