package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvasek/mailbrief/internal/domain"
	"github.com/rvasek/mailbrief/internal/view"
)

// Messages emitted by chatModel.

type askSubmittedMsg struct {
	question string
}

// chatModel is a Bubble Tea sub-model for the question panel. It owns
// the input line and the one-in-flight guard; the transcript itself
// lives in the session and is mirrored in for rendering.
type chatModel struct {
	input      textinput.Model
	transcript []domain.ChatMessage
	suggested  []string
	busy       bool
	width      int
	height     int
	focused    bool
}

func newChat(suggested []string) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask about your unread emails..."
	input.CharLimit = 500
	input.Prompt = "> "
	return chatModel{
		input:     input,
		suggested: suggested,
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return m.submit(m.input.Value())
		}

		// Digit shortcuts fire a suggested question when the input is
		// empty; otherwise digits are just text.
		if m.input.Value() == "" && len(msg.String()) == 1 {
			if n := int(msg.String()[0] - '1'); n >= 0 && n < len(m.suggested) {
				return m.submit(m.suggested[n])
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the one-in-flight guard: an empty question or a pending
// request makes it a no-op with the input left alone.
func (m chatModel) submit(question string) (chatModel, tea.Cmd) {
	question = strings.TrimSpace(question)
	if question == "" || m.busy {
		return m, nil
	}
	m.busy = true
	m.input.SetValue("")
	return m, func() tea.Msg {
		return askSubmittedMsg{question: question}
	}
}

// Finish re-enables the input after an answer or an error. Every exit
// path of an ask must land here, or the panel wedges.
func (m *chatModel) Finish() {
	m.busy = false
}

// Busy reports whether an ask is in flight.
func (m chatModel) Busy() bool { return m.busy }

// SetTranscript mirrors the session transcript for rendering.
func (m *chatModel) SetTranscript(transcript []domain.ChatMessage) {
	m.transcript = transcript
}

// SetSize updates the dimensions available for rendering.
func (m *chatModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 4
}

func (m *chatModel) Focus() {
	m.focused = true
	m.input.Focus()
}

func (m *chatModel) Blur() {
	m.focused = false
	m.input.Blur()
}

func (m chatModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	historyHeight := m.height - 2
	if historyHeight < 1 {
		historyHeight = 1
	}

	var lines []string
	if len(m.transcript) == 0 && !m.busy {
		lines = append(lines, mutedTextStyle.Render("Ask a question about your unread emails:"))
		for i, q := range m.suggested {
			lines = append(lines, mutedTextStyle.Render(fmt.Sprintf("  %d. %s", i+1, q)))
		}
	} else {
		for _, msg := range m.transcript {
			lines = append(lines, renderChatLine(msg, m.width))
		}
	}

	// The thinking indicator is transient: rendered only while a request
	// is in flight, never part of the transcript.
	if m.busy {
		lines = append(lines, mutedTextStyle.Render("Thinking..."))
	}

	if len(lines) > historyHeight {
		lines = lines[len(lines)-historyHeight:]
	}

	history := lipgloss.NewStyle().Height(historyHeight).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, history, m.input.View())
}

func renderChatLine(msg domain.ChatMessage, width int) string {
	text := view.EscapeText(msg.Text)
	switch msg.Role {
	case domain.RoleUser:
		return userMsgStyle.Render("You: ") + truncate(text, width-6)
	case domain.RoleAssistantError:
		return errorTextStyle.Render(truncate(text, width))
	default:
		return assistantMsgStyle.Render("AI: ") + truncate(text, width-5)
	}
}
