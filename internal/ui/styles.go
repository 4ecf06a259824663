package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	quitTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0, 1, 2)
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)
