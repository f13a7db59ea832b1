package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholders used when a forecast period is missing fields
const (
	PlaceholderPeriodName = "Unknown period"
	PlaceholderForecast   = "No forecast available"
)

// GridReference is the forecast endpoint resolved from a /points lookup.
// It only lives for the duration of one forecast call.
type GridReference struct {
	ForecastURL string
}

// Valid reports whether the point lookup produced a usable forecast URL
func (g GridReference) Valid() bool {
	return strings.TrimSpace(g.ForecastURL) != ""
}

// ForecastPeriod represents one forecast time-slice
type ForecastPeriod struct {
	Name             string   // e.g., "Tonight", "Monday"
	Temperature      *float64 // nil when the NWS omits it
	TemperatureUnit  string   // "F" or "C"
	WindSpeed        string   // e.g., "10 to 15 mph"
	WindDirection    string   // e.g., "NW"
	ShortForecast    string
	DetailedForecast string
}

// Format renders the period as the fixed text block:
//
//	Tonight:
//	Temperature: 41°F
//	Wind: 5 mph NW
//	Forecast: Mostly clear, with a low around 41.
func (p ForecastPeriod) Format() string {
	lines := []string{
		fmt.Sprintf("%s:", orDefault(p.Name, PlaceholderPeriodName)),
		fmt.Sprintf("Temperature: %s", p.temperature()),
		fmt.Sprintf("Wind: %s", p.wind()),
		fmt.Sprintf("Forecast: %s", p.Text()),
	}
	return strings.Join(lines, "\n")
}

// Text returns the most descriptive forecast text available
func (p ForecastPeriod) Text() string {
	if s := strings.TrimSpace(p.DetailedForecast); s != "" {
		return s
	}
	return orDefault(p.ShortForecast, PlaceholderForecast)
}

func (p ForecastPeriod) temperature() string {
	if p.Temperature == nil {
		return PlaceholderUnknown
	}
	return fmt.Sprintf("%s°%s",
		strconv.FormatFloat(*p.Temperature, 'f', -1, 64),
		orDefault(p.TemperatureUnit, PlaceholderUnknown))
}

func (p ForecastPeriod) wind() string {
	speed := strings.TrimSpace(p.WindSpeed)
	direction := strings.TrimSpace(p.WindDirection)
	switch {
	case speed == "" && direction == "":
		return PlaceholderUnknown
	case speed == "":
		return fmt.Sprintf("%s %s", PlaceholderUnknown, direction)
	case direction == "":
		return speed
	}
	return fmt.Sprintf("%s %s", speed, direction)
}
