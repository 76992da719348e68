package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnknownStandard     = errors.New("unknown compliance standard")
	ErrUnknownTemplate     = errors.New("unknown data template")
	ErrEmptyPrompt         = errors.New("prompt is empty")
	ErrEmptyText           = errors.New("text is empty")
	ErrEmptyAudio          = errors.New("audio is empty")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrNothingToExport     = errors.New("no results to export in this session")
	ErrSessionNotFound     = errors.New("session not found")
	ErrRecordStoreDisabled = errors.New("record store is not configured")
	ErrArchiveDisabled     = errors.New("export archive storage is not configured")
	ErrMissingIntegration  = errors.New("missing issue tracker details")
	ErrEmptyDocument       = errors.New("the uploaded document appears to be empty or too short for analysis")
	ErrEmptyResponse       = errors.New("empty response from AI service")
)

// ErrorPrefix starts the textual form of every upstream service failure.
const ErrorPrefix = "Error:"

// UpstreamError is returned by gateways when a hosted service fails.
// Its Error() text is the sentinel string surfaced to users unchanged.
type UpstreamError struct {
	Service string
	Message string
	Err     error
}

// NewUpstreamError builds an UpstreamError whose message starts with ErrorPrefix.
func NewUpstreamError(service string, err error, format string, args ...any) *UpstreamError {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasPrefix(msg, ErrorPrefix) {
		msg = ErrorPrefix + " " + msg
	}
	return &UpstreamError{Service: service, Message: msg, Err: err}
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports model output that could not be decoded into records.
type MalformedResponseError struct {
	Err  error
	Text string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("AI response was not valid JSON. Error: %v. Response: %s", e.Err, Truncate(e.Text, 500))
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Preview returns a truncated copy of the offending text.
func (e *MalformedResponseError) Preview() string {
	return Truncate(e.Text, 200)
}

// ConfigurationError lists required environment bindings that are absent.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// IntegrationError is a categorised issue-tracker export failure.
type IntegrationError struct {
	Kind    IntegrationFailure
	Message string
	Err     error
}

func (e *IntegrationError) Error() string {
	return e.Message
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// Hint returns the remediation hint for the failure category.
func (e *IntegrationError) Hint() string {
	switch e.Kind {
	case IntegrationAuth:
		return "Generate a new API token from Account Settings > Security > API tokens and check the account email."
	case IntegrationNotFound:
		return "Verify the project key exists and that the account can browse it."
	default:
		return "Check the server URL and network connectivity, then try again."
	}
}

// Truncate shortens s to at most maxLen bytes without splitting a rune,
// appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen] + "..."
}
