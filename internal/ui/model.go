// Package ui is a bubbletea front end for the weather operations
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Operations is the weather behaviour the UI runs queries against
type Operations interface {
	GetAlerts(ctx context.Context, state string) string
	GetForecast(ctx context.Context, latitude, longitude float64) string
	GetForecastByZipcode(ctx context.Context, zipcode string) string
}

// AppState represents the current state of the application
type AppState int

const (
	StateSearch  AppState = iota // Waiting for a query
	StateLoading                 // Query in flight
	StateDisplay                 // Showing a result
)

// queryTimeout bounds a single query including both forecast stages
const queryTimeout = 65 * time.Second

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	ops Operations

	// Search
	searchInput textinput.Model
	query       Query

	// cancel aborts the query in flight
	cancel context.CancelFunc

	// Result
	result  string
	results viewport.Model
	spinner spinner.Model
}

// NewModel creates a new application model
func NewModel(ops Operations) Model {
	ti := textinput.New()
	ti.Placeholder = "State (MN), coordinates (44.97,-93.26) or zipcode (02633)..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:       StateSearch,
		ops:         ops,
		searchInput: ti,
		results:     viewport.New(80, 20),
		spinner:     s,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.Width = max(msg.Width-4, 20)
		m.results.Height = max(msg.Height-10, 5)
		return m, nil

	case resultMsg:
		// Ignore results for a query the user has moved on from
		if m.state != StateLoading || msg.query != m.query {
			return m, nil
		}
		m.cancel = nil
		m.result = msg.text
		m.results.SetContent(renderResult(msg.text))
		m.results.GotoTop()
		m.state = StateDisplay
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.state {
		case StateSearch:
			return m.handleSearchInput(msg)

		case StateLoading:
			if msg.Type == tea.KeyEsc {
				if m.cancel != nil {
					m.cancel()
					m.cancel = nil
				}
				m.state = StateSearch
				m.searchInput.Focus()
				return m, textinput.Blink
			}
			return m, nil

		case StateDisplay:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "s", "esc":
				m.state = StateSearch
				m.searchInput.SetValue("")
				m.searchInput.Focus()
				m.result = ""
				return m, textinput.Blink
			}
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}

	if m.state == StateSearch {
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	if msg.Type == tea.KeyEnter {
		q, err := ParseQuery(m.searchInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.query = q
		m.err = nil
		m.state = StateLoading
		m.searchInput.Blur()

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		m.cancel = cancel
		run := runQuery(ctx, m.ops, q)
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			defer cancel()
			return run()
		})
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	}
	return m.viewSearch()
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("☁ Weather")
	subtitle := mutedStyle.Render("National Weather Service alerts & forecasts")

	var sections []string
	sections = append(sections, title, subtitle, "", searchBoxStyle.Render(m.searchInput.View()))

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.err.Error()))
	}

	sections = append(sections,
		"",
		mutedStyle.Render("Examples: MN | 44.97,-93.26 | 02633"),
		helpStyle.Render("Press Enter to search • Ctrl+C to quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	status := fmt.Sprintf("%s Fetching %s...", m.spinner.View(), m.query.Kind)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.query.Title()),
		"",
		status,
		helpStyle.Render("Esc: Back to search • Ctrl+C: Quit"),
	)
}

// viewDisplay renders the result of the last query
func (m Model) viewDisplay() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.query.Title()),
		resultBoxStyle.Render(m.results.View()),
		helpStyle.Render("↑/↓: Scroll • S/Esc: New search • Q: Quit"),
	)
}
