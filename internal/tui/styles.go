package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	activeSectionStyle = sectionStyle.
				Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	fadingStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			MarginTop(1)

	emptyStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)
)
