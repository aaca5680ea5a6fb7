package ui

import "github.com/charmbracelet/lipgloss"

// Lip Gloss styles for the interactive view.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	AccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	MutedStyle   = lipgloss.NewStyle().Faint(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	DoneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)
	ActiveTab     = lipgloss.NewStyle().Bold(true).Underline(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
