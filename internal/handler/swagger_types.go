package handler

import "copilot/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SyntheticRequest represents the synthetic-data generation request body.
type SyntheticRequest struct {
	Prompt   string `json:"prompt" example:"10 diabetic patients from Mumbai with HbA1c readings"`
	Template string `json:"template" example:"diabetes_management"`
}

// ChatRequest represents a chat question.
type ChatRequest struct {
	Message string `json:"message" binding:"required" example:"What does DPDPA say about consent for minors?"`
}

// PIIRequest represents a PII inspection request.
type PIIRequest struct {
	Text string `json:"text" binding:"required" example:"Patient Asha, phone +91 98200 00000"`
}

// IssueTrackerRequest represents the issue tracker export request body.
type IssueTrackerRequest struct {
	ServerURL  string `json:"server_url" example:"https://acme.atlassian.net"`
	Email      string `json:"email" example:"qa@acme.com"`
	APIToken   string `json:"api_token" example:"ATATT3x..."`
	ProjectKey string `json:"project_key" example:"HC"`
	IssueType  string `json:"issue_type" example:"Test"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"session ended"`
}

// SessionResponse represents a newly created session.
type SessionResponse struct {
	ID       string               `json:"id" example:"0b8e6c8c-5f5a-4c61-9f4e-6d3b1c1f2a10"`
	Standard string               `json:"standard" example:"india"`
	Messages []domain.ChatMessage `json:"messages"`
}

// ChatHistoryResponse represents the chat history.
type ChatHistoryResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// ChatReplyResponse represents the reply to a chat question.
type ChatReplyResponse struct {
	Reply    string               `json:"reply"`
	Messages []domain.ChatMessage `json:"messages"`
}

// TranscriptResponse represents a speech transcription.
type TranscriptResponse struct {
	Transcript string `json:"transcript" example:"What are the HIPAA breach notification rules?"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
