// Package speech transcribes recorded questions with Cloud Speech-to-Text.
package speech

import (
	"context"
	"fmt"
	"strings"

	speechapi "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
)

const (
	serviceName = "speech"

	// DefaultLanguage is used when the caller does not name one.
	DefaultLanguage = "en-IN"

	// NoSpeechWarning is returned when the audio contained no recognisable speech.
	NoSpeechWarning = "Warning: Audio processed, but no speech was recognized."
)

// Transcriber implements port.SpeechTranscriber with synchronous recognition.
type Transcriber struct {
	timeoutSecs int
	client      *gateway.LazyClient[*speechapi.Client]
	logger      *zap.Logger
}

// NewTranscriber creates a Speech-to-Text transcriber. The client dials on first use.
func NewTranscriber(cfg *config.GCPConfig, logger *zap.Logger, opts ...option.ClientOption) *Transcriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{
		timeoutSecs: cfg.TimeoutSecs,
		client: gateway.NewLazyClient(func(ctx context.Context) (*speechapi.Client, error) {
			return speechapi.NewClient(ctx, opts...)
		}),
		logger: logger,
	}
}

// Transcribe returns the concatenated top alternative of every result.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	if languageCode == "" {
		languageCode = DefaultLanguage
	}
	ctx, cancel := gateway.CallContext(ctx, t.timeoutSecs)
	defer cancel()

	resp, err := t.recognize(ctx, audio, languageCode)
	if err != nil {
		t.logger.Error("speech.Transcriber: recognize failed", zap.String("language", languageCode), zap.Error(err))
		return "", domain.NewUpstreamError(serviceName, err,
			"Could not transcribe audio. Check API is enabled and audio format is supported. Details: %v", err)
	}

	var sb strings.Builder
	for _, r := range resp.GetResults() {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			sb.WriteString(alts[0].GetTranscript())
		}
	}
	if sb.Len() == 0 {
		return NoSpeechWarning, nil
	}
	t.logger.Info("speech.Transcriber: transcription ok", zap.String("language", languageCode))
	return sb.String(), nil
}

func (t *Transcriber) recognize(ctx context.Context, audio []byte, languageCode string) (*speechpb.RecognizeResponse, error) {
	client, err := t.client.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating speech client: %w", err)
	}
	return client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
}

// Close releases the underlying connection.
func (t *Transcriber) Close() error {
	return t.client.Close()
}
