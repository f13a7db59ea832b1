package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/weather-mcp/internal/models"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for alerts
	colorWarning = lipgloss.Color("#FFD93D") // Yellow for warnings
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(64)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	periodNameStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Alert severity styles
	alertExtremeStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	alertSevereStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF8C42")).
				Bold(true)

	alertModerateStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true)

	alertMinorStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)
)

// severityStyle picks the style for an alert severity
func severityStyle(s models.AlertSeverity) lipgloss.Style {
	switch s {
	case models.SeverityExtreme:
		return alertExtremeStyle
	case models.SeveritySevere:
		return alertSevereStyle
	case models.SeverityModerate:
		return alertModerateStyle
	case models.SeverityMinor:
		return alertMinorStyle
	default:
		return mutedStyle
	}
}
