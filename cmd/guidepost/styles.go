package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)
