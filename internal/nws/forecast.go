package nws

import (
	"context"
	"fmt"
)

// Point gets the NOAA point metadata for a lat/lon, which carries the
// forecast URL for the grid cell containing it
func (c *Client) Point(ctx context.Context, lat, lon float64) (*PointResponse, error) {
	var point PointResponse
	if err := c.Fetch(ctx, c.PointsURL(lat, lon), &point); err != nil {
		return nil, fmt.Errorf("failed to get grid point: %w", err)
	}
	return &point, nil
}

// Forecast fetches the forecast payload from a URL returned by Point
func (c *Client) Forecast(ctx context.Context, forecastURL string) (*ForecastResponse, error) {
	var forecast ForecastResponse
	if err := c.Fetch(ctx, forecastURL, &forecast); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	return &forecast, nil
}

// PointResponse is the subset of /points metadata we use
type PointResponse struct {
	Properties struct {
		GridID           string `json:"gridId"`
		GridX            int    `json:"gridX"`
		GridY            int    `json:"gridY"`
		Forecast         string `json:"forecast"`
		ForecastHourly   string `json:"forecastHourly"`
		RelativeLocation struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

// ForecastResponse is the forecast payload for a grid cell
type ForecastResponse struct {
	Properties struct {
		Updated string   `json:"updated"`
		Periods []Period `json:"periods"`
	} `json:"properties"`
}

// Period is one forecast period as the NWS returns it
type Period struct {
	Number           int      `json:"number"`
	Name             string   `json:"name"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	IsDaytime        bool     `json:"isDaytime"`
	Temperature      *float64 `json:"temperature"`
	TemperatureUnit  string   `json:"temperatureUnit"`
	WindSpeed        string   `json:"windSpeed"`
	WindDirection    string   `json:"windDirection"`
	ShortForecast    string   `json:"shortForecast"`
	DetailedForecast string   `json:"detailedForecast"`
}
