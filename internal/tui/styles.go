package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
	colorSubtle  = lipgloss.Color("#414868")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	timerIdleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	timerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess)

	draftStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

// Swatch renders a coloured bullet for a project colour
func Swatch(hex string) string {
	if hex == "" {
		return subtitleStyle.Render("○")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
