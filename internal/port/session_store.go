package port

import (
	"context"

	"github.com/google/uuid"

	"copilot/internal/domain"
)

// SessionStore holds per-session state. Get returns domain.ErrSessionNotFound
// for unknown or expired sessions.
type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
