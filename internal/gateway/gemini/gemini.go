// Package gemini implements port.ModelGateway over the Gemini REST API with an
// API key.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
	"copilot/internal/port"
)

const (
	apiBaseURL  = "https://generativelanguage.googleapis.com/v1beta/models"
	serviceName = "gemini"
)

func init() {
	gateway.RegisterProvider(serviceName, func(_ context.Context, cfg *config.Config, logger *zap.Logger) (port.ModelGateway, error) {
		if cfg.Model.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires COPILOT_MODEL_API_KEY")
		}
		return NewGateway(&cfg.Model, logger), nil
	})
}

// Gateway implements port.ModelGateway using Google's Gemini API.
type Gateway struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewGateway creates a Gemini-backed model gateway.
func NewGateway(cfg *config.ModelConfig, logger *zap.Logger) *Gateway {
	return newGateway(cfg, "", logger)
}

// NewGatewayWithEndpoint creates a gateway pointing at a custom API endpoint (for testing).
func NewGatewayWithEndpoint(cfg *config.ModelConfig, endpoint string, logger *zap.Logger) *Gateway {
	return newGateway(cfg, endpoint, logger)
}

func newGateway(cfg *config.ModelConfig, endpoint string, logger *zap.Logger) *Gateway {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash-lite-001"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// generateResponse models the Gemini API response.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Generate sends prompt as a single user turn and returns the concatenated text parts.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
	}

	var resp generateResponse
	headers := map[string]string{"x-goog-api-key": g.apiKey}
	if err := gateway.PostJSON(ctx, g.client, g.endpoint, headers, reqBody, &resp); err != nil {
		g.logger.Error("gemini.Gateway: generate failed", zap.String("model", g.model), zap.Error(err))
		return "", domain.NewUpstreamError(serviceName, err, "Could not generate response from Gemini. Details: %v", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewUpstreamError(serviceName, nil, "Empty response from AI service")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewUpstreamError(serviceName, nil, "Empty response from AI service")
	}
	g.logger.Debug("gemini.Gateway: generate ok",
		zap.String("model", g.model),
		zap.String("finish_reason", resp.Candidates[0].FinishReason),
		zap.Int("chars", len(text)))
	return text, nil
}
