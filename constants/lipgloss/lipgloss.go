package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FFF87"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	Bold    = lipgloss.NewStyle().Bold(true)

	Info = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")).Italic(true)

	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AF87FF")).MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5FD7FF")).
		Padding(0, 1)

	// Badge renders short labels such as API endpoints and generated features.
	Badge = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1C1C1C")).
		Background(lipgloss.Color("#87D7AF")).
		Padding(0, 1).
		MarginRight(1)

	StepNumber = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD75F"))
)
