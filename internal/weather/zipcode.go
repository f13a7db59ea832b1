package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/geocoding"
)

// GetForecastByZipcode resolves a US zipcode through the Locator and returns
// the forecast for its coordinate
func (s *Service) GetForecastByZipcode(ctx context.Context, zipcode string) string {
	if s.locator == nil {
		return MsgZipcodeUnsupported
	}

	zipcode = strings.TrimSpace(zipcode)
	if !geocoding.IsZipcode(zipcode) {
		return fmt.Sprintf("Invalid zipcode %q: expected a 5-digit US zipcode.", zipcode)
	}

	loc, err := s.locator.LookupZipcode(ctx, zipcode)
	if err != nil {
		if !errors.Is(err, geocoding.ErrNotFound) {
			s.logger.WithField("zipcode", zipcode).WithError(err).Warn("zipcode lookup failed")
		}
		return fmt.Sprintf("Unable to find a location for zipcode %s.", zipcode)
	}

	s.logger.WithFields(log.Fields{
		"zipcode":  zipcode,
		"location": loc.Name,
	}).Debug("zipcode resolved")

	forecast := s.GetForecast(ctx, loc.Latitude, loc.Longitude)
	if forecast == MsgForecastUnavailable {
		return forecast
	}
	return fmt.Sprintf("Forecast for %s\n\n%s", loc.Name, forecast)
}
