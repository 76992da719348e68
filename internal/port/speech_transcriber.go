package port

import "context"

// SpeechTranscriber converts recorded audio into text.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error)
}
