package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"copilot/internal/service"
)

// ChatHandler handles the co-pilot chat endpoints.
type ChatHandler struct {
	chat service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// History handles GET /api/v1/chat
// @Summary Chat history
// @Tags chat
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} Response{data=ChatHistoryResponse}
// @Router /chat [get]
func (h *ChatHandler) History(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	RespondOK(c, ChatHistoryResponse{Messages: h.chat.History(sess)})
}

// Ask handles POST /api/v1/chat
// @Summary Ask the co-pilot
// @Description Replies longer than 550 characters are shortened. Upstream failures are kept in the history.
// @Tags chat
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body ChatRequest true "Question"
// @Success 200 {object} Response{data=ChatReplyResponse}
// @Failure 400 {object} ErrorResponseBody "Empty message"
// @Failure 502 {object} ErrorResponseBody "Upstream service error"
// @Router /chat [post]
func (h *ChatHandler) Ask(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "message is required")
		return
	}

	reply, err := h.chat.Ask(c.Request.Context(), sess, req.Message)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ChatReplyResponse{Reply: reply, Messages: sess.Messages})
}
