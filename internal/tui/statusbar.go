package tui

import "github.com/charmbracelet/lipgloss"

type statusBar struct {
	message     string
	width       int
	isError     bool
	chatFocused bool
	digestShown bool
}

func newStatusBar() statusBar {
	return statusBar{message: "Ready"}
}

func (s *statusBar) setMessage(msg string) {
	s.message = msg
	s.isError = false
}

func (s *statusBar) setError(msg string) {
	s.message = msg
	s.isError = true
}

func (s statusBar) View() string {
	msgStyle := statusBarStyle
	if s.isError {
		msgStyle = msgStyle.Foreground(errorColor)
	}

	left := s.message
	shortcuts := s.shortcuts()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 2
	if gap < 0 {
		gap = 0
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + mutedTextStyle.Render(shortcuts)
	return msgStyle.Width(s.width).Render(content)
}

func (s statusBar) shortcuts() string {
	if s.chatFocused {
		return "enter:send  1-9:suggested  tab/esc:digest  ctrl+c:quit"
	}
	if s.digestShown {
		return "j/k:nav  enter/d:mark read  r:refresh  tab:chat  q:quit"
	}
	return "r:refresh  q:quit"
}
