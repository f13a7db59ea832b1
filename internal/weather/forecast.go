package weather

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/models"
	"github.com/ngmaloney/weather-mcp/internal/nws"
)

// GetForecast returns up to maxPeriods forecast periods for a coordinate.
//
// The NWS requires two sequential requests: /points resolves the coordinate
// to its grid forecast URL, which is then fetched for the periods. A failure
// at either stage yields MsgForecastUnavailable. Coordinates are not range
// checked here; the upstream rejects what it cannot resolve.
func (s *Service) GetForecast(ctx context.Context, lat, lon float64) string {
	fields := log.Fields{"latitude": lat, "longitude": lon}

	grid, err := s.resolveGrid(ctx, lat, lon)
	if err != nil {
		s.logFailure("get_forecast", err, fields)
		return MsgForecastUnavailable
	}
	if !grid.Valid() {
		s.logger.WithFields(fields).Warn("point lookup returned no forecast URL")
		return MsgForecastUnavailable
	}

	forecast, err := s.api.Forecast(ctx, grid.ForecastURL)
	if err != nil {
		s.logFailure("get_forecast", err, fields)
		return MsgForecastUnavailable
	}

	periods := toForecastPeriods(forecast, s.maxPeriods)
	blocks := make([]string, 0, len(periods))
	for _, period := range periods {
		blocks = append(blocks, period.Format())
	}

	s.logger.WithFields(fields).WithField("periods", len(blocks)).Debug("forecast formatted")
	return joinBlocks(blocks)
}

func (s *Service) resolveGrid(ctx context.Context, lat, lon float64) (models.GridReference, error) {
	point, err := s.api.Point(ctx, lat, lon)
	if err != nil {
		return models.GridReference{}, err
	}
	if point == nil {
		return models.GridReference{}, nil
	}
	return models.GridReference{ForecastURL: point.Properties.Forecast}, nil
}

// toForecastPeriods converts at most limit upstream periods
func toForecastPeriods(forecast *nws.ForecastResponse, limit int) []models.ForecastPeriod {
	if forecast == nil {
		return nil
	}

	upstream := forecast.Properties.Periods
	if len(upstream) > limit {
		upstream = upstream[:limit]
	}

	periods := make([]models.ForecastPeriod, 0, len(upstream))
	for _, p := range upstream {
		periods = append(periods, models.ForecastPeriod{
			Name:             p.Name,
			Temperature:      p.Temperature,
			TemperatureUnit:  p.TemperatureUnit,
			WindSpeed:        p.WindSpeed,
			WindDirection:    p.WindDirection,
			ShortForecast:    p.ShortForecast,
			DetailedForecast: p.DetailedForecast,
		})
	}
	return periods
}
