package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"copilot/internal/domain"
	"copilot/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"configuration", &domain.ConfigurationError{Missing: []string{"GCP_PROJECT_ID"}}, http.StatusServiceUnavailable, "CONFIGURATION_ERROR"},
		{"upstream", domain.NewUpstreamError("gemini", nil, "quota exceeded"), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"malformed", &domain.MalformedResponseError{Err: errors.New("bad"), Text: "{"}, http.StatusUnprocessableEntity, "MALFORMED_RESPONSE"},
		{"integration auth", &domain.IntegrationError{Kind: domain.IntegrationAuth, Message: "denied"}, http.StatusUnauthorized, "INTEGRATION_AUTH_FAILED"},
		{"integration not found", &domain.IntegrationError{Kind: domain.IntegrationNotFound, Message: "no project"}, http.StatusNotFound, "INTEGRATION_NOT_FOUND"},
		{"integration generic", &domain.IntegrationError{Kind: domain.IntegrationGeneric, Message: "timeout"}, http.StatusBadGateway, "INTEGRATION_ERROR"},
		{"file type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"standard", domain.ErrUnknownStandard, http.StatusBadRequest, "UNKNOWN_STANDARD"},
		{"wrapped missing integration", fmt.Errorf("%w: email", domain.ErrMissingIntegration), http.StatusBadRequest, "MISSING_INTEGRATION_DETAILS"},
		{"empty document", domain.ErrEmptyDocument, http.StatusUnprocessableEntity, "EMPTY_DOCUMENT"},
		{"empty response", domain.ErrEmptyResponse, http.StatusBadGateway, "EMPTY_RESPONSE"},
		{"nothing to export", domain.ErrNothingToExport, http.StatusConflict, "NOTHING_TO_EXPORT"},
		{"archive disabled", domain.ErrArchiveDisabled, http.StatusNotImplemented, "ARCHIVE_DISABLED"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_UpstreamTextPassesThrough(t *testing.T) {
	_, _, msg := handler.MapDomainError(domain.NewUpstreamError("gemini", nil, "Error: quota exceeded"))
	assert.Equal(t, "Error: quota exceeded", msg)
}

func TestMapDomainError_UnexpectedErrorText(t *testing.T) {
	_, _, msg := handler.MapDomainError(errors.New("disk on fire"))
	assert.Equal(t, "unexpected error: disk on fire", msg)
}

func TestHandleError_IntegrationHint(t *testing.T) {
	c, w := newContext(http.MethodPost, "/", nil, nil)

	handler.HandleError(c, &domain.IntegrationError{Kind: domain.IntegrationAuth, Message: "Jira authentication failed"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, "Jira authentication failed", resp.Error.Message)
		assert.Contains(t, resp.Error.Hint, "API token")
	}
}
