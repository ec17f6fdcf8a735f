package cmd

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for command output.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F780FF")). // Bright pink
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B")) // Green

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C")) // Yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")). // Red
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")). // Muted purple
			Italic(true)
)
