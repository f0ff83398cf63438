package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvasek/mailbrief/internal/view"
)

// Messages emitted by digestModel.

type markReadRequestMsg struct {
	emailID string
}

// rowHeight is the number of terminal lines one card occupies.
const rowHeight = 3

// digestModel is a Bubble Tea sub-model that displays the prioritized
// unread digest as a scrollable card list.
type digestModel struct {
	cards   []view.Card
	fading  map[string]bool
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

func newDigest() digestModel {
	return digestModel{fading: make(map[string]bool)}
}

func (m digestModel) Update(msg tea.Msg) (digestModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.cards)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, keys.MarkRead):
			return m, m.markReadCmd()
		}
	}

	return m, nil
}

func (m digestModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if len(m.cards) == 0 {
		return mutedTextStyle.Render("No emails")
	}

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.cards) {
		end = len(m.cards)
	}

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderCard(i))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetCards replaces the card list, dropping fade marks for cards that no
// longer exist.
func (m *digestModel) SetCards(cards []view.Card) {
	m.cards = cards
	alive := make(map[string]bool, len(m.fading))
	for _, c := range cards {
		if m.fading[c.ID] {
			alive[c.ID] = true
		}
	}
	m.fading = alive
	m.clampCursor()
}

// SetSize updates the dimensions available for rendering.
func (m *digestModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.adjustScroll()
}

// MarkFading dims the card while the mark-read transition runs. A card
// already fading stays fading; there is nothing to undo.
func (m *digestModel) MarkFading(id string) {
	m.fading[id] = true
}

// SelectedID returns the ID of the highlighted card, or "".
func (m digestModel) SelectedID() string {
	if len(m.cards) == 0 || m.cursor >= len(m.cards) {
		return ""
	}
	return m.cards[m.cursor].ID
}

// --- internal helpers ---

func (m digestModel) visibleRows() int {
	rows := m.height / rowHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *digestModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *digestModel) clampCursor() {
	if len(m.cards) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	m.adjustScroll()
}

func (m digestModel) markReadCmd() tea.Cmd {
	id := m.SelectedID()
	if id == "" || m.fading[id] {
		return nil
	}
	return func() tea.Msg {
		return markReadRequestMsg{emailID: id}
	}
}

func (m digestModel) renderCard(idx int) string {
	c := m.cards[idx]

	badge := badgeStyle(c.Tier).Render("[" + c.Badge + "]")
	date := mutedTextStyle.Render(c.Date)

	subjectWidth := m.width - lipgloss.Width(badge) - lipgloss.Width(date) - 4
	if subjectWidth < 10 {
		subjectWidth = 10
	}
	subject := lipgloss.NewStyle().Width(subjectWidth).Bold(true).Render(truncate(c.Subject, subjectWidth))

	detail := c.Summary
	if c.Reason != "" {
		detail = c.Summary + " · " + c.Reason
	}

	if m.fading[c.ID] {
		return lipgloss.JoinVertical(lipgloss.Left,
			fadingStyle.Render(truncate(c.Subject, m.width)),
			fadingStyle.Render("  "+truncate(c.Sender, m.width-2)),
			fadingStyle.Render("  "+truncate(detail, m.width-2)),
		)
	}

	header := badge + "  " + subject + "  " + date
	if idx == m.cursor && m.focused {
		header = selectedStyle.Width(m.width).Render(header)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		mutedTextStyle.Render("  "+truncate(c.Sender, m.width-2)),
		"  "+truncate(detail, m.width-2),
	)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
