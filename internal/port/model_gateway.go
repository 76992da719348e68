package port

import "context"

// ModelGateway sends one prompt to a hosted generative model and returns the
// raw response text. Service failures are returned as *domain.UpstreamError.
type ModelGateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
