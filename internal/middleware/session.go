package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"copilot/internal/domain"
	"copilot/internal/service"
)

const (
	ContextKeySession      = "session"
	ContextKeySessionEnded = "session_ended"

	// SessionHeader carries the session id on requests and responses.
	SessionHeader = "X-Session-ID"
)

// ErrNoSession is returned when the session middleware did not run.
var ErrNoSession = errors.New("session not found in context")

// Session returns Gin middleware that resolves the caller's session from the
// X-Session-ID header, starting a new one when needed, and stores it again
// once the handler has run.
func Session(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, created, err := sessions.Resolve(c.Request.Context(), c.GetHeader(SessionHeader))
		if err != nil {
			GetLogger(c).Error("session resolve failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"code": "SESSION_UNAVAILABLE", "message": "unexpected error: " + err.Error()},
			})
			return
		}
		if created {
			GetLogger(c).Debug("new session", zap.String("session_id", sess.ID.String()))
		}

		c.Set(ContextKeySession, sess)
		c.Header(SessionHeader, sess.ID.String())
		c.Next()

		if c.GetBool(ContextKeySessionEnded) {
			return
		}
		if err := sessions.Save(c.Request.Context(), sess); err != nil {
			GetLogger(c).Warn("session save failed", zap.String("session_id", sess.ID.String()), zap.Error(err))
		}
	}
}

// GetSession extracts the session from the Gin context.
func GetSession(c *gin.Context) (*domain.Session, error) {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, ErrNoSession
	}
	sess, ok := val.(*domain.Session)
	if !ok || sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

// SetSession stores sess in the Gin context.
func SetSession(c *gin.Context, sess *domain.Session) {
	c.Set(ContextKeySession, sess)
}

// MarkSessionEnded stops the session middleware from storing the session
// after the handler returns.
func MarkSessionEnded(c *gin.Context) {
	c.Set(ContextKeySessionEnded, true)
}
