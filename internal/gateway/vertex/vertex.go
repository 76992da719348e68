// Package vertex implements port.ModelGateway on Vertex AI through the genai SDK.
package vertex

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
	"copilot/internal/gateway/gcpauth"
	"copilot/internal/port"
)

const serviceName = "vertex"

func init() {
	gateway.RegisterProvider(serviceName, func(_ context.Context, cfg *config.Config, logger *zap.Logger) (port.ModelGateway, error) {
		return NewGateway(&cfg.GCP, &cfg.Model, logger), nil
	})
}

// ContentGenerator is the part of *genai.Models the gateway uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gateway implements port.ModelGateway using a Vertex AI hosted Gemini model.
// The SDK client is created on first use.
type Gateway struct {
	model  string
	logger *zap.Logger

	mu        sync.Mutex
	generator ContentGenerator
	connect   func(ctx context.Context) (ContentGenerator, error)
}

// NewGateway creates a Vertex AI model gateway for the configured project and region.
func NewGateway(gcp *config.GCPConfig, model *config.ModelConfig, logger *zap.Logger) *Gateway {
	timeout := time.Duration(model.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	g := newGateway(model.DefaultModel, logger)
	g.connect = func(ctx context.Context) (ContentGenerator, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			Project:    gcp.ProjectID,
			Location:   gcp.Region,
			Backend:    genai.BackendVertexAI,
			HTTPClient: gcpauth.NewClient(timeout),
		})
		if err != nil {
			return nil, err
		}
		return client.Models, nil
	}
	return g
}

// NewGatewayWithGenerator creates a gateway over an existing generator (for testing).
func NewGatewayWithGenerator(model string, generator ContentGenerator, logger *zap.Logger) *Gateway {
	g := newGateway(model, logger)
	g.generator = generator
	return g
}

func newGateway(model string, logger *zap.Logger) *Gateway {
	if model == "" {
		model = "gemini-2.0-flash-lite-001"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{model: model, logger: logger}
}

func (g *Gateway) client(ctx context.Context) (ContentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generator != nil {
		return g.generator, nil
	}
	if g.connect == nil {
		return nil, fmt.Errorf("no client configured")
	}
	gen, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}
	g.generator = gen
	return gen, nil
}

// Generate sends prompt to the model and returns its text.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	gen, err := g.client(ctx)
	if err != nil {
		g.logger.Error("vertex.Gateway: client init failed", zap.Error(err))
		return "", domain.NewUpstreamError(serviceName, err, "Vertex AI client is not initialized. Details: %v", err)
	}

	resp, err := gen.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.Error("vertex.Gateway: generate failed", zap.String("model", g.model), zap.Error(err))
		return "", domain.NewUpstreamError(serviceName, err, "Could not generate response from Vertex AI. Details: %v", err)
	}
	if resp == nil {
		return "", domain.NewUpstreamError(serviceName, nil, "Empty response from AI service")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewUpstreamError(serviceName, nil, "Empty response from AI service")
	}
	g.logger.Debug("vertex.Gateway: generate ok", zap.String("model", g.model), zap.Int("chars", len(text)))
	return text, nil
}
