package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan = lipgloss.Color("36")
	colorRed  = lipgloss.Color("167")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorCyan)
	errorStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorRed).Padding(0, 1)
	codeStyle    = lipgloss.NewStyle().Foreground(colorGray)

	tooltipBg = "#222222"
	tooltipFg = "#ffffff"
)
