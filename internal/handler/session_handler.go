package handler

import (
	"github.com/gin-gonic/gin"

	"copilot/internal/middleware"
	"copilot/internal/service"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /api/v1/sessions
// @Summary Start a session
// @Description Creates a session seeded with the welcome message. Send the returned id as X-Session-ID.
// @Tags sessions
// @Produce json
// @Success 201 {object} Response{data=SessionResponse}
// @Failure 500 {object} ErrorResponseBody
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Start(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header(middleware.SessionHeader, sess.ID.String())
	RespondCreated(c, SessionResponse{ID: sess.ID.String(), Standard: sess.Standard, Messages: sess.Messages})
}

// End handles DELETE /api/v1/sessions/current
// @Summary End the current session
// @Description Discards all state held for the session named by X-Session-ID.
// @Tags sessions
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 500 {object} ErrorResponseBody
// @Router /sessions/current [delete]
func (h *SessionHandler) End(c *gin.Context) {
	sess, ok := sessionFrom(c)
	if !ok {
		return
	}
	if err := h.sessions.End(c.Request.Context(), sess.ID); err != nil {
		HandleError(c, err)
		return
	}
	middleware.MarkSessionEnded(c)
	RespondOK(c, MessageResponse{Message: "session ended"})
}
