package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
	"copilot/internal/gateway/gemini"
)

func newTestGateway(serverURL string) *gemini.Gateway {
	cfg := &config.ModelConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-2.0-flash-lite-001",
		TimeoutSecs:  30,
	}
	return gemini.NewGatewayWithEndpoint(cfg, serverURL, nil)
}

func successResponse(parts ...string) map[string]interface{} {
	ps := make([]map[string]interface{}, len(parts))
	for i, p := range parts {
		ps[i] = map[string]interface{}{"text": p}
	}
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content":      map[string]interface{}{"role": "model", "parts": ps},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGateway_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		parts := msg["parts"].([]interface{})
		assert.Equal(t, "audit this", parts[0].(map[string]interface{})["text"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(successResponse("[Pass] ok", "\nmore"))
	}))
	defer server.Close()

	text, err := newTestGateway(server.URL).Generate(context.Background(), "audit this")
	require.NoError(t, err)
	assert.Equal(t, "[Pass] ok\nmore", text)
}

func TestGateway_Generate_TextContainingErrorIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(successResponse("[Risk - High] Error: handling missing\nNo retry path"))
	}))
	defer server.Close()

	text, err := newTestGateway(server.URL).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Contains(t, text, "Error: handling missing")
}

func TestGateway_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).Generate(context.Background(), "p")
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "gemini", upstream.Service)
	assert.True(t, strings.HasPrefix(err.Error(), "Error:"))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGateway_Generate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, "Error: Empty response from AI service", err.Error())
}

func TestGateway_Generate_BlankText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(successResponse("  \n "))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, "Error: Empty response from AI service", err.Error())
}

func TestGateway_Generate_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).Generate(context.Background(), "p")
	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
}

func TestRegisteredProvider(t *testing.T) {
	assert.Contains(t, gateway.Providers(), "gemini")

	_, err := gateway.NewModelGateway(context.Background(), &config.Config{Model: config.ModelConfig{Provider: "gemini"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPILOT_MODEL_API_KEY")

	gw, err := gateway.NewModelGateway(context.Background(), &config.Config{Model: config.ModelConfig{Provider: "gemini", APIKey: "k"}}, nil)
	require.NoError(t, err)
	assert.IsType(t, &gemini.Gateway{}, gw)
}
