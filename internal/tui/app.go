package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvasek/mailbrief/internal/auth"
	"github.com/rvasek/mailbrief/internal/backend"
	"github.com/rvasek/mailbrief/internal/domain"
	"github.com/rvasek/mailbrief/internal/session"
	"github.com/rvasek/mailbrief/internal/view"
)

// TokenProvider supplies the bearer token used for backend calls.
type TokenProvider interface {
	AcquireToken(ctx context.Context) (string, error)
}

// Backend is the slice of the backend API the popup drives.
type Backend interface {
	FetchUnread(ctx context.Context, token string) ([]domain.Email, error)
	MarkRead(ctx context.Context, token, emailID string) error
	Ask(ctx context.Context, question string, emails []domain.Email) (string, error)
}

type pane int

const (
	paneDigest pane = iota
	paneChat
)

// --- async result messages ---

type tokenAcquiredMsg struct {
	token string
}

type authFailedMsg struct {
	err error
}

type digestLoadedMsg struct {
	emails []domain.Email
}

type fetchFailedMsg struct {
	err error
}

type markReadDoneMsg struct {
	emailID string
	err     error
}

type fadeDoneMsg struct {
	emailID string
}

type answerMsg struct {
	answer string
}

type askFailedMsg struct {
	err error
}

// --- root model ---

type model struct {
	tokens  TokenProvider
	backend Backend
	sess    *session.State

	digest    digestModel
	chat      chatModel
	statusBar statusBar

	token      string
	activePane pane
	fadeDelay  time.Duration

	width  int
	height int
}

// NewModel creates the root TUI model. The load pipeline starts on Init:
// acquire a token, fetch the digest, then render.
func NewModel(tokens TokenProvider, b Backend, suggested []string, fadeDelay time.Duration) model {
	digest := newDigest()
	digest.focused = true

	sb := newStatusBar()
	sb.setMessage("Checking your inbox...")

	return model{
		tokens:     tokens,
		backend:    b,
		sess:       session.New(),
		digest:     digest,
		chat:       newChat(suggested),
		statusBar:  sb,
		activePane: paneDigest,
		fadeDelay:  fadeDelay,
	}
}

func (m model) Init() tea.Cmd {
	return m.acquireTokenCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- window resize ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.resizeSubModels()
		return m, nil

	// --- load pipeline ---
	case tokenAcquiredMsg:
		m.token = msg.token
		m.statusBar.setMessage("Fetching unread emails...")
		return m, m.fetchCmd()

	case authFailedMsg:
		m.token = ""
		m.sess.Fail(msg.err, false)
		m.setFocus(paneDigest)
		m.statusBar.digestShown = false
		m.statusBar.setError("Authentication failed")
		return m, nil

	case digestLoadedMsg:
		m.sess.Replace(msg.emails)
		m.digest.SetCards(view.ToCards(m.sess.Emails()))
		if m.sess.Phase() == session.PhaseEmpty {
			m.setFocus(paneDigest)
			m.statusBar.digestShown = false
			m.statusBar.setMessage("All caught up!")
		} else {
			m.statusBar.digestShown = true
			m.statusBar.setMessage(fmt.Sprintf("%d unread emails", m.sess.Len()))
		}
		return m, nil

	case fetchFailedMsg:
		// Token sanity failures are auth-class: retrying with the same
		// broken token would recur, so the refresh affordance goes away.
		retryable := !auth.IsAuthError(msg.err) && !backend.IsValidationError(msg.err)
		m.sess.Fail(msg.err, retryable)
		m.setFocus(paneDigest)
		m.statusBar.digestShown = false
		m.statusBar.setError("Failed to load emails")
		return m, nil

	// --- mark-read pipeline ---
	case markReadRequestMsg:
		m.digest.MarkFading(msg.emailID)
		m.statusBar.setMessage("Marking as read...")
		return m, tea.Batch(
			m.markReadCmd(msg.emailID),
			m.fadeCmd(msg.emailID),
		)

	case markReadDoneMsg:
		if msg.err != nil {
			// The email stays removed locally; the server copy comes
			// back on the next refresh if this was transient.
			log.Printf("[tui] failed to mark %s as read: %v", msg.emailID, msg.err)
			m.statusBar.setError("Mark-read didn't reach the server; the email may return on refresh")
		} else {
			m.statusBar.setMessage("Marked as read")
		}
		return m, nil

	case fadeDoneMsg:
		m.sess.Remove(msg.emailID)
		m.digest.SetCards(view.ToCards(m.sess.Emails()))
		if m.sess.Len() == 0 {
			// Emptying the digest by reading everything triggers a full
			// reload, token acquisition included, never a direct Empty.
			m.sess.Reset()
			m.setFocus(paneDigest)
			m.statusBar.digestShown = false
			m.statusBar.setMessage("Checking your inbox...")
			return m, m.acquireTokenCmd()
		}
		m.statusBar.setMessage(fmt.Sprintf("%d unread emails", m.sess.Len()))
		return m, nil

	// --- chat pipeline ---
	case askSubmittedMsg:
		m.sess.Append(domain.ChatMessage{Role: domain.RoleUser, Text: msg.question})
		m.chat.SetTranscript(m.sess.Transcript())
		return m, m.askCmd(msg.question)

	case answerMsg:
		m.sess.Append(domain.ChatMessage{Role: domain.RoleAssistant, Text: msg.answer})
		m.chat.Finish()
		m.chat.SetTranscript(m.sess.Transcript())
		return m, nil

	case askFailedMsg:
		m.sess.Append(domain.ChatMessage{Role: domain.RoleAssistantError, Text: askErrorText(msg.err)})
		m.chat.Finish()
		m.chat.SetTranscript(m.sess.Transcript())
		return m, nil

	// --- key events ---
	case tea.KeyMsg:
		// Chat gets all key events while focused, except quit and the
		// focus toggles: its text input would otherwise eat them.
		if m.activePane == paneChat {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			if key.Matches(msg, keys.Chat) || key.Matches(msg, keys.Back) {
				m.setFocus(paneDigest)
				return m, nil
			}
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()

		case key.Matches(msg, keys.Chat):
			if m.sess.Phase() == session.PhaseShowingEmails {
				m.setFocus(paneChat)
			}
			return m, nil
		}

		if m.sess.Phase() == session.PhaseShowingEmails {
			var cmd tea.Cmd
			m.digest, cmd = m.digest.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.sess.Phase() {
	case session.PhaseLoading:
		content = m.centeredPanel(centerPanelStyle, mutedTextStyle.Render("Checking your inbox..."))

	case session.PhaseError:
		content = m.errorPanel()

	case session.PhaseEmpty:
		content = m.centeredPanel(centerPanelStyle, lipgloss.JoinVertical(lipgloss.Center,
			successTextStyle.Render("All caught up!"),
			mutedTextStyle.Render("No unread emails right now."),
			"",
			mutedTextStyle.Render("Press r to refresh."),
		))

	default:
		content = m.digestAndChatView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.statusBar.View())
}

// --- rendering helpers ---

func (m model) digestAndChatView() string {
	listHeight, chatHeight := m.layoutHeights()

	header := titleStyle.Render("mailbrief") + mutedTextStyle.Render(fmt.Sprintf("  %d unread", m.sess.Len()))

	listView := listStyle.
		Width(m.width - 2).
		Height(listHeight - 2).
		Render(header + "\n" + m.digest.View())

	style := chatStyle
	if m.activePane == paneChat {
		style = chatFocusedStyle
	}
	chatView := style.
		Width(m.width - 2).
		Height(chatHeight - 2).
		Render(m.chat.View())

	return lipgloss.JoinVertical(lipgloss.Left, listView, chatView)
}

func (m model) errorPanel() string {
	err, canRetry := m.sess.Err()
	if err == nil {
		err = errors.New("unknown error")
	}

	heading := "Something went wrong"
	hint := ""
	switch {
	case auth.IsAuthError(err) || backend.IsValidationError(err):
		heading = "Authentication Required"
		hint = "Check your Google credentials, then reopen mailbrief."
	case backend.IsBackendError(err):
		heading = "Error from Backend"
		hint = "Your session may have expired, or the server is missing its AI key."
	case backend.IsNetworkError(err):
		heading = "Connection Error"
		hint = "Check that the backend is running and reachable."
	}

	lines := []string{
		errorTextStyle.Render(heading),
		"",
		view.EscapeText(err.Error()),
	}
	if hint != "" {
		lines = append(lines, mutedTextStyle.Render(hint))
	}
	if canRetry {
		lines = append(lines, "", mutedTextStyle.Render("Press r to retry."))
	}

	return m.centeredPanel(errorPanelStyle, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) centeredPanel(style lipgloss.Style, inner string) string {
	contentHeight := m.height - 1
	panel := style.Render(inner)
	return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, panel)
}

// --- focus and layout ---

func (m *model) setFocus(p pane) {
	m.activePane = p
	m.digest.focused = (p == paneDigest)
	m.statusBar.chatFocused = (p == paneChat)
	if p == paneChat {
		m.chat.Focus()
	} else {
		m.chat.Blur()
	}
}

func (m model) layoutHeights() (listHeight, chatHeight int) {
	contentHeight := m.height - 1 // status bar
	chatHeight = contentHeight / 3
	if chatHeight < 6 {
		chatHeight = 6
	}
	listHeight = contentHeight - chatHeight
	return
}

func (m *model) resizeSubModels() {
	listHeight, chatHeight := m.layoutHeights()

	// listStyle/chatStyle: border (2h, 2v) + padding (2h) and one header line.
	m.digest.SetSize(m.width-6, listHeight-3)
	m.chat.SetSize(m.width-6, chatHeight-2)
}

// refresh re-runs the whole load path from token acquisition. Auth-class
// failures ignore it: the same credential problem would recur.
func (m *model) refresh() tea.Cmd {
	if m.sess.Phase() == session.PhaseError {
		if _, retry := m.sess.Err(); !retry {
			return nil
		}
	}
	m.sess.Reset()
	m.digest.SetCards(nil)
	m.setFocus(paneDigest)
	m.statusBar.digestShown = false
	m.statusBar.setMessage("Checking your inbox...")
	return m.acquireTokenCmd()
}

// --- async commands ---

func (m model) acquireTokenCmd() tea.Cmd {
	return func() tea.Msg {
		token, err := m.tokens.AcquireToken(context.Background())
		if err != nil {
			return authFailedMsg{err: err}
		}
		return tokenAcquiredMsg{token: token}
	}
}

func (m model) fetchCmd() tea.Cmd {
	token := m.token
	return func() tea.Msg {
		emails, err := m.backend.FetchUnread(context.Background(), token)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return digestLoadedMsg{emails: emails}
	}
}

func (m model) markReadCmd(emailID string) tea.Cmd {
	token := m.token
	return func() tea.Msg {
		err := m.backend.MarkRead(context.Background(), token, emailID)
		return markReadDoneMsg{emailID: emailID, err: err}
	}
}

func (m model) fadeCmd(emailID string) tea.Cmd {
	return tea.Tick(m.fadeDelay, func(time.Time) tea.Msg {
		return fadeDoneMsg{emailID: emailID}
	})
}

func (m model) askCmd(question string) tea.Cmd {
	emails := append([]domain.Email(nil), m.sess.Emails()...)
	return func() tea.Msg {
		answer, err := m.backend.Ask(context.Background(), question, emails)
		if err != nil {
			return askFailedMsg{err: err}
		}
		return answerMsg{answer: answer}
	}
}

func askErrorText(err error) string {
	var be *backend.BackendError
	if errors.As(err, &be) {
		return "API Error: " + be.Message
	}
	var ne *backend.NetworkError
	if errors.As(err, &ne) {
		return "Connection error: " + ne.Message
	}
	return "Error: " + err.Error()
}

// Run starts the Bubble Tea TUI application.
func Run(tokens TokenProvider, b Backend, suggested []string, fadeDelay time.Duration) error {
	prog := tea.NewProgram(
		NewModel(tokens, b, suggested, fadeDelay),
		tea.WithAltScreen(),
	)
	_, err := prog.Run()
	return err
}
