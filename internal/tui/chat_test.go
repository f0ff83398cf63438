package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvasek/mailbrief/internal/backend"
	"github.com/rvasek/mailbrief/internal/domain"
)

func chatFocused(t *testing.T, tokens *fakeTokens, b *fakeBackend) model {
	t.Helper()
	m := loaded(t, tokens, b)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activePane != paneChat {
		t.Fatal("tab should focus the chat panel")
	}
	return m
}

func typeAndSend(t *testing.T, m model, text string) (model, tea.Cmd) {
	t.Helper()
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestChat_QuestionAndAnswer(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{emails: testEmails("a", "b"), answer: "Reply to a first."}
	m := chatFocused(t, tokens, b)

	m, cmd := typeAndSend(t, m, "what first?")
	if !m.chat.Busy() {
		t.Error("chat should be busy while the ask is in flight")
	}

	msgs := collect(t, cmd)
	for len(msgs) > 0 {
		m, cmd = step(t, m, msgs[0])
		msgs = append(msgs[1:], collect(t, cmd)...)
	}

	transcript := m.sess.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(transcript))
	}
	if transcript[0].Role != domain.RoleUser || transcript[0].Text != "what first?" {
		t.Errorf("transcript[0] = %+v, want the user question", transcript[0])
	}
	if transcript[1].Role != domain.RoleAssistant || transcript[1].Text != "Reply to a first." {
		t.Errorf("transcript[1] = %+v, want the answer", transcript[1])
	}
	if m.chat.Busy() {
		t.Error("chat must be re-enabled after the answer")
	}
}

func TestChat_OneInFlight(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{emails: testEmails("a"), answer: "ok"}
	m := chatFocused(t, tokens, b)

	m, cmd := typeAndSend(t, m, "first question")
	if cmd == nil {
		t.Fatal("first submit should produce an ask")
	}

	// A second submit while the first is pending is dropped entirely.
	m, cmd2 := typeAndSend(t, m, "second question")
	if cmd2 != nil {
		t.Error("submit while busy must be a no-op")
	}

	msgs := collect(t, cmd)
	for len(msgs) > 0 {
		m, cmd = step(t, m, msgs[0])
		msgs = append(msgs[1:], collect(t, cmd)...)
	}
	transcript := m.sess.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2 (dropped question must not appear)", len(transcript))
	}
}

func TestChat_EmptyQuestionIgnored(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{emails: testEmails("a")}
	m := chatFocused(t, tokens, b)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty question should be a no-op")
	}
	if m.chat.Busy() {
		t.Error("empty question must not disable the input")
	}
	if len(m.sess.Transcript()) != 0 {
		t.Error("empty question must not enter the transcript")
	}
}

func TestChat_ErrorAppendsAssistantError(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{emails: testEmails("a"), askErr: &backend.BackendError{Message: "AI provider API key not configured"}}
	m := chatFocused(t, tokens, b)

	m, cmd := typeAndSend(t, m, "anything urgent?")
	msgs := collect(t, cmd)
	for len(msgs) > 0 {
		m, cmd = step(t, m, msgs[0])
		msgs = append(msgs[1:], collect(t, cmd)...)
	}

	transcript := m.sess.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(transcript))
	}
	last := transcript[1]
	if last.Role != domain.RoleAssistantError {
		t.Errorf("role = %q, want assistant-error", last.Role)
	}
	if !strings.Contains(last.Text, "AI provider API key not configured") {
		t.Errorf("text = %q, want the backend's message", last.Text)
	}
	if m.chat.Busy() {
		t.Error("chat must be re-enabled after an error")
	}
}

func TestChat_SuggestedQuestionShortcut(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{emails: testEmails("a"), answer: "ok"}
	m := chatFocused(t, tokens, b)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	if cmd == nil {
		t.Fatal("digit shortcut should submit the suggested question")
	}
	msg := cmd()
	ask, ok := msg.(askSubmittedMsg)
	if !ok {
		t.Fatalf("msg = %T, want askSubmittedMsg", msg)
	}
	if ask.question != "Which emails need a reply today?" {
		t.Errorf("question = %q, want the first suggested question", ask.question)
	}

	// With text already typed, digits are just text.
	m.chat.Finish()
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("top 3")})
	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	if cmd != nil {
		if _, ok := cmd().(askSubmittedMsg); ok {
			t.Error("digit with pending input must not submit a suggested question")
		}
	}
}

func TestChat_TranscriptSurvivesReload(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{emails: testEmails("a", "b"), answer: "ok"}
	m := chatFocused(t, tokens, b)

	m, cmd := typeAndSend(t, m, "q1")
	msgs := collect(t, cmd)
	for len(msgs) > 0 {
		m, cmd = step(t, m, msgs[0])
		msgs = append(msgs[1:], collect(t, cmd)...)
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd = step(t, m, keyRunes("r"))
	msgs = collect(t, cmd)
	for len(msgs) > 0 {
		m, cmd = step(t, m, msgs[0])
		msgs = append(msgs[1:], collect(t, cmd)...)
	}

	if len(m.sess.Transcript()) != 2 {
		t.Error("refresh must not clear the chat transcript")
	}
}

func TestChat_UnavailableOutsideShowingEmails(t *testing.T) {
	tokens := &fakeTokens{token: "ya29.test-token-0123456789"}
	b := &fakeBackend{}
	m := loaded(t, tokens, b) // empty digest

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activePane == paneChat {
		t.Error("chat must not be reachable without a digest")
	}
}

func TestChat_ThinkingIndicatorIsTransient(t *testing.T) {
	suggested := []string{"Which emails need a reply today?"}
	c := newChat(suggested)
	c.SetSize(60, 8)
	c.Focus()

	c2, _ := c.submit("anything?")
	if !strings.Contains(c2.View(), "Thinking...") {
		t.Error("busy chat should render the thinking indicator")
	}

	c2.Finish()
	c2.SetTranscript([]domain.ChatMessage{
		{Role: domain.RoleUser, Text: "anything?"},
		{Role: domain.RoleAssistant, Text: "no"},
	})
	if strings.Contains(c2.View(), "Thinking...") {
		t.Error("thinking indicator must disappear once the answer lands")
	}
}
