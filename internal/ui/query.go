package ui

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ngmaloney/weather-mcp/internal/geocoding"
)

// QueryKind selects which weather operation a query runs
type QueryKind int

const (
	QueryAlerts QueryKind = iota
	QueryForecast
	QueryZipcode
)

func (k QueryKind) String() string {
	switch k {
	case QueryAlerts:
		return "alerts"
	case QueryForecast:
		return "forecast"
	case QueryZipcode:
		return "zipcode forecast"
	}
	return "unknown"
}

// Query is a parsed search box entry
type Query struct {
	Kind      QueryKind
	State     string
	Latitude  float64
	Longitude float64
	Zipcode   string
}

var statePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

var errEmptyQuery = errors.New("enter a state code, coordinates or zipcode")

// ParseQuery accepts a two-letter state code, "lat,lon" or a US zipcode
func ParseQuery(input string) (Query, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}, errEmptyQuery
	}

	if statePattern.MatchString(input) {
		return Query{Kind: QueryAlerts, State: strings.ToUpper(input)}, nil
	}

	if geocoding.IsZipcode(input) {
		return Query{Kind: QueryZipcode, Zipcode: input}, nil
	}

	parts := strings.Split(input, ",")
	if len(parts) == 2 {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if latErr == nil && lonErr == nil {
			if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
				return Query{}, fmt.Errorf("coordinates out of range: %s", input)
			}
			return Query{Kind: QueryForecast, Latitude: lat, Longitude: lon}, nil
		}
	}

	return Query{}, fmt.Errorf("unrecognized query %q", input)
}

// Title describes the query for the result header
func (q Query) Title() string {
	switch q.Kind {
	case QueryAlerts:
		return fmt.Sprintf("Active alerts for %s", q.State)
	case QueryForecast:
		return fmt.Sprintf("Forecast for %.4f, %.4f", q.Latitude, q.Longitude)
	case QueryZipcode:
		return fmt.Sprintf("Forecast for zipcode %s", q.Zipcode)
	}
	return ""
}
