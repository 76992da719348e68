package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"copilot/internal/domain"
	"copilot/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Upstream, configuration and malformed-response errors carry their own text.
func MapDomainError(err error) (status int, code, msg string) {
	var (
		configErr      *domain.ConfigurationError
		upstreamErr    *domain.UpstreamError
		malformedErr   *domain.MalformedResponseError
		integrationErr *domain.IntegrationError
	)
	switch {
	case errors.As(err, &configErr):
		return http.StatusServiceUnavailable, "CONFIGURATION_ERROR", configErr.Error()
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, "UPSTREAM_ERROR", upstreamErr.Error()
	case errors.As(err, &malformedErr):
		return http.StatusUnprocessableEntity, "MALFORMED_RESPONSE", malformedErr.Error()
	case errors.As(err, &integrationErr):
		switch integrationErr.Kind {
		case domain.IntegrationAuth:
			return http.StatusUnauthorized, "INTEGRATION_AUTH_FAILED", integrationErr.Error()
		case domain.IntegrationNotFound:
			return http.StatusNotFound, "INTEGRATION_NOT_FOUND", integrationErr.Error()
		default:
			return http.StatusBadGateway, "INTEGRATION_ERROR", integrationErr.Error()
		}
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, docx, txt"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnknownStandard):
		return http.StatusBadRequest, "UNKNOWN_STANDARD", "unknown compliance standard"
	case errors.Is(err, domain.ErrUnknownTemplate):
		return http.StatusBadRequest, "UNKNOWN_TEMPLATE", "unknown data template"
	case errors.Is(err, domain.ErrEmptyPrompt):
		return http.StatusBadRequest, "EMPTY_PROMPT", "a prompt or message is required"
	case errors.Is(err, domain.ErrEmptyText):
		return http.StatusBadRequest, "EMPTY_TEXT", "text is required"
	case errors.Is(err, domain.ErrEmptyAudio):
		return http.StatusBadRequest, "EMPTY_AUDIO", "audio is required"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error()
	case errors.Is(err, domain.ErrMissingIntegration):
		return http.StatusBadRequest, "MISSING_INTEGRATION_DETAILS", err.Error()
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusUnprocessableEntity, "EMPTY_DOCUMENT", "the uploaded document appears to be empty or too short for analysis"
	case errors.Is(err, domain.ErrEmptyResponse):
		return http.StatusBadGateway, "EMPTY_RESPONSE", "empty response from AI service"
	case errors.Is(err, domain.ErrNothingToExport):
		return http.StatusConflict, "NOTHING_TO_EXPORT", "no results to export in this session"
	case errors.Is(err, domain.ErrArchiveDisabled):
		return http.StatusNotImplemented, "ARCHIVE_DISABLED", "export archive storage is not configured"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error: " + err.Error()
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Issue tracker failures include their remediation hint.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		middleware.GetLogger(c).Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	apiErr := &APIError{Code: code, Message: msg}
	var integrationErr *domain.IntegrationError
	if errors.As(err, &integrationErr) {
		apiErr.Hint = integrationErr.Hint()
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// sessionFrom returns the request's session, answering with an error when the
// session middleware did not run.
func sessionFrom(c *gin.Context) (*domain.Session, bool) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error: "+err.Error())
		return nil, false
	}
	return sess, true
}
