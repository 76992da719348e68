package vertex_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
	"copilot/internal/gateway/vertex"
)

type fakeGenerator struct {
	model    string
	prompt   string
	response *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.response, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestGateway_Generate_Success(t *testing.T) {
	gen := &fakeGenerator{response: textResponse("[{\"id\":\"TC001\"}]")}
	gw := vertex.NewGatewayWithGenerator("", gen, nil)

	text, err := gw.Generate(context.Background(), "make tests")
	require.NoError(t, err)
	assert.Equal(t, "[{\"id\":\"TC001\"}]", text)
	assert.Equal(t, "gemini-2.0-flash-lite-001", gen.model)
	assert.Equal(t, "make tests", gen.prompt)
}

func TestGateway_Generate_SDKError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rpc error: code = ResourceExhausted")}
	gw := vertex.NewGatewayWithGenerator("custom-model", gen, nil)

	_, err := gw.Generate(context.Background(), "p")
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "vertex", upstream.Service)
	assert.Equal(t, "Error: Could not generate response from Vertex AI. Details: rpc error: code = ResourceExhausted", err.Error())
	assert.Equal(t, "custom-model", gen.model)
}

func TestGateway_Generate_Empty(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"blank text":    textResponse("   "),
	} {
		t.Run(name, func(t *testing.T) {
			gw := vertex.NewGatewayWithGenerator("m", &fakeGenerator{response: resp}, nil)
			_, err := gw.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Equal(t, "Error: Empty response from AI service", err.Error())
		})
	}
}

func TestRegisteredProvider(t *testing.T) {
	cfg := &config.Config{
		GCP:   config.GCPConfig{ProjectID: "p", Region: "us-central1"},
		Model: config.ModelConfig{Provider: "vertex"},
	}
	gw, err := gateway.NewModelGateway(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &vertex.Gateway{}, gw)
}
