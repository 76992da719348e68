package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/port"
	"copilot/internal/prompt"
)

// ChatService defines the co-pilot chat contract.
type ChatService interface {
	History(sess *domain.Session) []domain.ChatMessage
	Ask(ctx context.Context, sess *domain.Session, question string) (string, error)
}

type chatService struct {
	cfg    *config.Config
	model  port.ModelGateway
	logger *zap.Logger
}

// NewChatService creates a new ChatService implementation.
func NewChatService(cfg *config.Config, model port.ModelGateway, logger *zap.Logger) ChatService {
	return &chatService{cfg: cfg, model: model, logger: nopIfNil(logger)}
}

// History returns the session's chat, seeding it with the welcome message.
func (s *chatService) History(sess *domain.Session) []domain.ChatMessage {
	if len(sess.Messages) == 0 {
		sess.Messages = []domain.ChatMessage{{Role: domain.ChatRoleAssistant, Content: prompt.WelcomeMessage}}
	}
	return sess.Messages
}

// Ask sends the guarded question to the model and appends both turns to the
// history. An upstream failure is recorded as the assistant's reply.
func (s *chatService) Ask(ctx context.Context, sess *domain.Session, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrEmptyPrompt
	}
	if err := s.cfg.GCP.RequireBindings(); err != nil {
		return "", err
	}

	history := s.History(sess)
	userTurn := domain.ChatMessage{Role: domain.ChatRoleUser, Content: question}

	reply, err := s.model.Generate(ctx, prompt.BuildChat(question))
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			sess.Messages = append(history, userTurn, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: upstream.Error()})
		}
		s.logger.Warn("chat: model call failed", zap.Error(err))
		return "", err
	}

	reply = CutReply(reply, s.cfg.Model.ChatMaxChars, s.cfg.Model.ChatCutChars)
	sess.Messages = append(history, userTurn, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply})
	return reply, nil
}

// CutReply shortens replies longer than maxChars characters to their first
// cutChars characters followed by "...".
func CutReply(reply string, maxChars, cutChars int) string {
	if maxChars <= 0 {
		return reply
	}
	runes := []rune(reply)
	if len(runes) <= maxChars {
		return reply
	}
	if cutChars <= 0 || cutChars > maxChars {
		cutChars = maxChars
	}
	return string(runes[:cutChars]) + "..."
}
