package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"copilot/internal/catalog"
	"copilot/internal/domain"
	"copilot/internal/port"
	"copilot/internal/prompt"
)

// SessionService manages per-session state.
type SessionService interface {
	Start(ctx context.Context) (*domain.Session, error)
	Resolve(ctx context.Context, rawID string) (sess *domain.Session, created bool, err error)
	Save(ctx context.Context, sess *domain.Session) error
	End(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	store   port.SessionStore
	catalog *catalog.Catalog
	now     func() time.Time
	logger  *zap.Logger
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(store port.SessionStore, cat *catalog.Catalog, logger *zap.Logger) SessionService {
	return &sessionService{store: store, catalog: cat, now: time.Now, logger: nopIfNil(logger)}
}

// Start creates and stores a session seeded with the welcome message and the
// default standard.
func (s *sessionService) Start(ctx context.Context) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Standard:  s.catalog.DefaultStandard().Key,
		Messages:  []domain.ChatMessage{{Role: domain.ChatRoleAssistant, Content: prompt.WelcomeMessage}},
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("sessionService.Start: %w", err)
	}
	s.logger.Debug("session started", zap.String("session_id", sess.ID.String()))
	return sess, nil
}

// Resolve loads the session named by rawID, starting a new one when the id is
// absent, malformed, unknown or expired.
func (s *sessionService) Resolve(ctx context.Context, rawID string) (*domain.Session, bool, error) {
	if id, err := uuid.Parse(rawID); err == nil {
		sess, err := s.store.Get(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, fmt.Errorf("sessionService.Resolve: %w", err)
		}
	}
	sess, err := s.Start(ctx)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

func (s *sessionService) Save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("sessionService.Save: %w", err)
	}
	return nil
}

func (s *sessionService) End(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("sessionService.End: %w", err)
	}
	s.logger.Debug("session ended", zap.String("session_id", id.String()))
	return nil
}
