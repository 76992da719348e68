package port

import (
	"context"

	"copilot/internal/domain"
)

// PIIInspector scans text for personal data.
type PIIInspector interface {
	Inspect(ctx context.Context, text string) ([]domain.PIIFinding, error)
}
