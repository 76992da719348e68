package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSpeechTranscriber is a mock implementation of port.SpeechTranscriber.
type MockSpeechTranscriber struct {
	mock.Mock
}

func (m *MockSpeechTranscriber) Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error) {
	args := m.Called(ctx, audio, languageCode)
	return args.String(0), args.Error(1)
}
