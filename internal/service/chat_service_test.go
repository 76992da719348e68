package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"copilot/internal/domain"
	"copilot/internal/prompt"
	"copilot/internal/service"
	"copilot/mocks"
)

func TestChatService_History_SeedsWelcome(t *testing.T) {
	svc := service.NewChatService(testConfig(), new(mocks.MockModelGateway), nil)
	sess := newSession()

	history := svc.History(sess)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ChatRoleAssistant, history[0].Role)
	assert.Equal(t, prompt.WelcomeMessage, history[0].Content)
}

func TestChatService_Ask(t *testing.T) {
	model := new(mocks.MockModelGateway)
	svc := service.NewChatService(testConfig(), model, nil)
	sess := newSession()

	model.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "What does HIPAA cover?")
	})).Return("HIPAA covers protected health information.", nil)

	reply, err := svc.Ask(context.Background(), sess, " What does HIPAA cover? ")
	require.NoError(t, err)
	assert.Equal(t, "HIPAA covers protected health information.", reply)

	require.Len(t, sess.Messages, 3)
	assert.Equal(t, domain.ChatMessage{Role: domain.ChatRoleUser, Content: "What does HIPAA cover?"}, sess.Messages[1])
	assert.Equal(t, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply}, sess.Messages[2])
}

func TestChatService_Ask_CutsLongReplies(t *testing.T) {
	model := new(mocks.MockModelGateway)
	svc := service.NewChatService(testConfig(), model, nil)
	long := strings.Repeat("é", 600)
	model.On("Generate", mock.Anything, mock.Anything).Return(long, nil)

	reply, err := svc.Ask(context.Background(), newSession(), "question")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 520)+"...", reply)
}

func TestChatService_Ask_UpstreamErrorRecorded(t *testing.T) {
	model := new(mocks.MockModelGateway)
	svc := service.NewChatService(testConfig(), model, nil)
	sess := newSession()
	model.On("Generate", mock.Anything, mock.Anything).Return("", domain.NewUpstreamError("vertex", nil, "quota exceeded"))

	_, err := svc.Ask(context.Background(), sess, "question")
	require.Error(t, err)

	require.Len(t, sess.Messages, 3)
	assert.Equal(t, "Error: quota exceeded", sess.Messages[2].Content)
	assert.Equal(t, domain.ChatRoleAssistant, sess.Messages[2].Role)
}

func TestChatService_Ask_EmptyQuestion(t *testing.T) {
	model := new(mocks.MockModelGateway)
	svc := service.NewChatService(testConfig(), model, nil)
	sess := newSession()

	_, err := svc.Ask(context.Background(), sess, "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
	assert.Empty(t, sess.Messages)
}

func TestCutReply(t *testing.T) {
	assert.Equal(t, "short", service.CutReply("short", 550, 520))
	assert.Equal(t, strings.Repeat("a", 550), service.CutReply(strings.Repeat("a", 550), 550, 520))
	assert.Equal(t, strings.Repeat("a", 520)+"...", service.CutReply(strings.Repeat("a", 551), 550, 520))
	assert.Equal(t, "abcdef", service.CutReply("abcdef", 0, 0))
}
