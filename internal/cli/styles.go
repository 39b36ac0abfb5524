package cli

import "github.com/charmbracelet/lipgloss"

var (
	// Header styling for table headers
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	// Success styling
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Dirty marker styling
	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8800")).
			Bold(true)

	// Subtle text styling
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
