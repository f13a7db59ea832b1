package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

// resultMsg is sent when an operation has returned its text
type resultMsg struct {
	query Query
	text  string
}

// runQuery runs the query against ops off the UI goroutine
func runQuery(ctx context.Context, ops Operations, q Query) tea.Cmd {
	return func() tea.Msg {
		var text string
		switch q.Kind {
		case QueryAlerts:
			text = ops.GetAlerts(ctx, q.State)
		case QueryForecast:
			text = ops.GetForecast(ctx, q.Latitude, q.Longitude)
		case QueryZipcode:
			text = ops.GetForecastByZipcode(ctx, q.Zipcode)
		}
		return resultMsg{query: q, text: text}
	}
}
