package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"copilot/internal/domain"
	"copilot/internal/service"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive regulatory chat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newChatModel(cmd.Context(), app.Chat, sess), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0D6EFD"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#" + domain.SeverityPass.Hex()))
)

// replyMsg carries the outcome of one Ask call.
type replyMsg struct {
	err error
}

type chatModel struct {
	ctx     context.Context
	chat    service.ChatService
	session *domain.Session

	input    textinput.Model
	viewport viewport.Model
	width    int
	waiting  bool
}

func newChatModel(ctx context.Context, chat service.ChatService, session *domain.Session) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about HIPAA, DPDPA, GDPR..."
	ti.Focus()
	ti.CharLimit = 2000

	vp := viewport.New(80, 20)
	m := chatModel{ctx: ctx, chat: chat, session: session, input: ti, viewport: vp, width: 80}
	m.viewport.SetContent(m.renderHistory())
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) ask(question string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.chat.Ask(m.ctx, m.session, question)
		return replyMsg{err: err}
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.input.Width = msg.Width - 4
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.viewport.SetContent(m.renderHistory() + "\n\n" + userStyle.Render("You: ") + question)
			m.viewport.GotoBottom()
			return m, m.ask(question)
		}

	case replyMsg:
		m.waiting = false
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) View() string {
	status := ""
	if m.waiting {
		status = mutedStyle.Render(" thinking...")
	}
	return m.viewport.View() + "\n" + m.input.View() + status
}

// renderHistory renders every message, assistant replies as markdown.
func (m chatModel) renderHistory() string {
	history := m.chat.History(m.session)
	parts := make([]string, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case domain.ChatRoleUser:
			parts = append(parts, userStyle.Render("You: ")+msg.Content)
		default:
			parts = append(parts, assistantStyle.Render("Co-Pilot:")+"\n"+renderMarkdown(msg.Content, m.width-4))
		}
	}
	return strings.Join(parts, "\n\n")
}
