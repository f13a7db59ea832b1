package ui

import (
	"strings"

	"github.com/ngmaloney/weather-mcp/internal/models"
	"github.com/ngmaloney/weather-mcp/internal/weather"
)

// renderResult colours the plain operation text for the terminal.
// The text itself is left unchanged apart from styling.
func renderResult(text string) string {
	switch text {
	case "":
		return mutedStyle.Render("No forecast periods returned.")
	case weather.MsgNoActiveAlerts:
		return successStyle.Render("✓ " + text)
	case weather.MsgAlertsUnavailable, weather.MsgForecastUnavailable, weather.MsgZipcodeUnsupported:
		return errorStyle.Render("✗ " + text)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = renderLine(line)
	}
	return strings.Join(lines, "\n")
}

func renderLine(line string) string {
	if line == "---" {
		return mutedStyle.Render(strings.Repeat("─", 40))
	}

	if value, ok := strings.CutPrefix(line, "Severity: "); ok {
		return labelStyle.Render("Severity:") + " " + severityStyle(models.ParseSeverity(value)).Render(value)
	}

	label, value, ok := strings.Cut(line, ":")
	if !ok {
		return line
	}
	if value == "" {
		// Forecast period headers end in a bare colon
		return periodNameStyle.Render(line)
	}
	return labelStyle.Render(label+":") + value
}
