package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"copilot/internal/domain"
	"copilot/mocks"
)

func TestChatModel_AskRoundTrip(t *testing.T) {
	chat := new(mocks.MockChatService)
	session := &domain.Session{ID: uuid.New()}
	history := []domain.ChatMessage{{Role: domain.ChatRoleAssistant, Content: "Hello"}}
	chat.On("History", session).Return(history)
	chat.On("Ask", mock.Anything, session, "What is PHI?").Return("Protected health information.", nil)

	m := newChatModel(context.Background(), chat, session)
	m.input.SetValue("  What is PHI?  ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(chatModel)
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, m.View(), "thinking")

	msg := cmd()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	assert.NoError(t, reply.err)

	next, _ = m.Update(reply)
	m = next.(chatModel)
	assert.False(t, m.waiting)
	chat.AssertExpectations(t)
}

func TestChatModel_IgnoresBlankInput(t *testing.T) {
	chat := new(mocks.MockChatService)
	session := &domain.Session{ID: uuid.New()}
	chat.On("History", session).Return(nil)

	m := newChatModel(context.Background(), chat, session)
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	chat.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatModel_Quit(t *testing.T) {
	chat := new(mocks.MockChatService)
	session := &domain.Session{ID: uuid.New()}
	chat.On("History", session).Return(nil)

	m := newChatModel(context.Background(), chat, session)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
