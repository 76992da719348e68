package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"copilot/internal/service"
)

// AssistHandler handles PII inspection and speech transcription.
type AssistHandler struct {
	assist   service.AssistService
	maxBytes int64
}

// NewAssistHandler creates a new AssistHandler.
func NewAssistHandler(assist service.AssistService, maxBytes int64) *AssistHandler {
	return &AssistHandler{assist: assist, maxBytes: maxBytes}
}

// InspectPII handles POST /api/v1/pii/inspect
// @Summary Find personal data in text
// @Tags assist
// @Accept json
// @Produce json
// @Param request body PIIRequest true "Text to inspect"
// @Success 200 {object} Response{data=[]domain.PIIFinding}
// @Failure 400 {object} ErrorResponseBody "Empty text"
// @Failure 502 {object} ErrorResponseBody "Upstream service error"
// @Router /pii/inspect [post]
func (h *AssistHandler) InspectPII(c *gin.Context) {
	var req PIIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	findings, err := h.assist.InspectPII(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, findings)
}

// Transcribe handles POST /api/v1/speech/transcribe
// @Summary Transcribe a recorded question
// @Tags assist
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Recorded audio"
// @Param language formData string false "BCP-47 language code" default(en-IN)
// @Success 200 {object} Response{data=TranscriptResponse}
// @Failure 400 {object} ErrorResponseBody "Missing audio"
// @Failure 502 {object} ErrorResponseBody "Upstream service error"
// @Router /speech/transcribe [post]
func (h *AssistHandler) Transcribe(c *gin.Context) {
	upload, ok := readUpload(c, "audio", h.maxBytes)
	if !ok {
		return
	}

	text, err := h.assist.Transcribe(c.Request.Context(), upload.Content, c.PostForm("language"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, TranscriptResponse{Transcript: text})
}
