package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/port"
)

// AssistService groups the single-call helpers around the main workflows:
// PII inspection and speech transcription.
type AssistService interface {
	InspectPII(ctx context.Context, text string) ([]domain.PIIFinding, error)
	Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error)
}

type assistService struct {
	cfg         *config.Config
	inspector   port.PIIInspector
	transcriber port.SpeechTranscriber
	logger      *zap.Logger
}

// NewAssistService creates a new AssistService implementation.
func NewAssistService(
	cfg *config.Config,
	inspector port.PIIInspector,
	transcriber port.SpeechTranscriber,
	logger *zap.Logger,
) AssistService {
	return &assistService{cfg: cfg, inspector: inspector, transcriber: transcriber, logger: nopIfNil(logger)}
}

func (s *assistService) InspectPII(ctx context.Context, text string) ([]domain.PIIFinding, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}
	if err := s.cfg.GCP.RequireBindings(); err != nil {
		return nil, err
	}
	findings, err := s.inspector.Inspect(ctx, text)
	if err != nil {
		s.logger.Warn("pii inspection failed", zap.Error(err))
		return nil, err
	}
	if findings == nil {
		findings = []domain.PIIFinding{}
	}
	return findings, nil
}

func (s *assistService) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	if len(audio) == 0 {
		return "", domain.ErrEmptyAudio
	}
	if err := s.cfg.GCP.RequireBindings(); err != nil {
		return "", err
	}
	text, err := s.transcriber.Transcribe(ctx, audio, languageCode)
	if err != nil {
		s.logger.Warn("speech transcription failed", zap.Error(err))
		return "", err
	}
	return text, nil
}
