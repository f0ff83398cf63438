package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rvasek/mailbrief/internal/domain"
)

var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6366F1")
	mutedColor     = lipgloss.Color("#6B7280")
	accentColor    = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	successColor   = lipgloss.Color("#10B981")

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	chatStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	chatFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	errorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2)

	centerPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(mutedColor).
				Padding(1, 2)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF"))

	fadingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successTextStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	userMsgStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	highBadgeStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	mediumBadgeStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	lowBadgeStyle = lipgloss.NewStyle().
			Foreground(successColor)
)

func badgeStyle(t domain.Tier) lipgloss.Style {
	switch t {
	case domain.TierHigh:
		return highBadgeStyle
	case domain.TierMedium:
		return mediumBadgeStyle
	default:
		return lowBadgeStyle
	}
}
