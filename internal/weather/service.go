// Package weather implements the text-returning alert and forecast
// operations on top of the NWS API. Every operation absorbs upstream
// failures and answers with a fixed user-facing message instead of an error.
package weather

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/geocoding"
	"github.com/ngmaloney/weather-mcp/internal/nws"
)

// Fixed responses returned in place of errors
const (
	MsgAlertsUnavailable   = "Unable to fetch alerts or no alerts found."
	MsgNoActiveAlerts      = "No active alerts for this state."
	MsgForecastUnavailable = "Unable to fetch forecast data for this location."
	MsgZipcodeUnsupported  = "Zipcode lookup is not enabled on this server."
)

// DefaultMaxPeriods is how many forecast periods are rendered
const DefaultMaxPeriods = 5

const blockSeparator = "\n---\n"

// Locator resolves a US zipcode to a coordinate
type Locator interface {
	LookupZipcode(ctx context.Context, zipcode string) (*geocoding.Location, error)
}

// Service runs the weather operations. It holds no mutable state and may be
// shared across concurrent calls.
type Service struct {
	api        nws.API
	locator    Locator
	maxPeriods int
	logger     *log.Entry
}

// Option configures a Service
type Option func(*Service)

// WithMaxPeriods caps the number of forecast periods rendered
func WithMaxPeriods(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPeriods = n
		}
	}
}

// WithLocator enables zipcode forecasts
func WithLocator(l Locator) Option {
	return func(s *Service) { s.locator = l }
}

// WithLogger sets the logger used to record absorbed failures
func WithLogger(l *log.Entry) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service backed by api
func NewService(api nws.API, opts ...Option) *Service {
	s := &Service{
		api:        api,
		maxPeriods: DefaultMaxPeriods,
		logger:     log.WithField("component", "weather"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ZipcodeEnabled reports whether a Locator is configured
func (s *Service) ZipcodeEnabled() bool {
	return s.locator != nil
}

// logFailure records an absorbed upstream failure with whatever detail the
// error carries
func (s *Service) logFailure(op string, err error, fields log.Fields) {
	entry := s.logger.WithFields(fields).WithField("op", op)

	var fetchErr *nws.FetchError
	if errors.As(err, &fetchErr) {
		entry = entry.WithFields(log.Fields{
			"url":  fetchErr.URL,
			"kind": fetchErr.Kind,
		})
		if fetchErr.StatusCode != 0 {
			entry = entry.WithField("status", fetchErr.StatusCode)
		}
	}
	entry.WithError(err).Warn("upstream request failed")
}

func joinBlocks(blocks []string) string {
	return strings.Join(blocks, blockSeparator)
}
