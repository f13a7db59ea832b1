// Package nws is a thin client for the National Weather Service API
// (https://api.weather.gov). Every request is a single GET carrying the
// identifying User-Agent and GeoJSON Accept header the NWS requires.
package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://api.weather.gov"
	DefaultUserAgent = "weather-mcp/1.0 (github.com/ngmaloney/weather-mcp)"
	DefaultTimeout   = 30 * time.Second

	acceptGeoJSON = "application/geo+json"
)

// API defines the NWS resources the weather operations depend on
type API interface {
	// ActiveAlerts retrieves the active alerts feature collection for a state
	ActiveAlerts(ctx context.Context, state string) (*AlertCollection, error)

	// Point resolves a coordinate to its NWS point metadata
	Point(ctx context.Context, lat, lon float64) (*PointResponse, error)

	// Forecast retrieves a forecast payload from a URL returned by Point
	Forecast(ctx context.Context, forecastURL string) (*ForecastResponse, error)
}

// Client implements API over HTTP. Its configuration is fixed at
// construction, so a single Client is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *log.Entry
}

var _ API = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different API root
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithUserAgent overrides the identifying User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *log.Entry) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new NWS client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: log.WithField("component", "nws"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AlertsURL builds the active-alerts-by-area URL for a state code
func (c *Client) AlertsURL(state string) string {
	return fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, state)
}

// PointsURL builds the point metadata URL for a coordinate
func (c *Client) PointsURL(lat, lon float64) string {
	return fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
}

// Fetch issues a single GET for url and decodes the JSON body into v.
// Any failure is returned as a *FetchError; there are no retries.
func (c *Client) Fetch(ctx context.Context, url string, v any) error {
	start := time.Now()
	logger := c.logger.WithField("url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Kind: KindRequest, URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindTransport
		if isTimeout(err) {
			kind = KindTimeout
		}
		return &FetchError{Kind: kind, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body so the problem detail shows up in logs
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FetchError{
			Kind:       KindStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Kind: KindTransport, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{Kind: KindDecode, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	logger.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start),
	}).Debug("nws request complete")

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
