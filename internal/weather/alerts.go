package weather

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/models"
	"github.com/ngmaloney/weather-mcp/internal/nws"
)

// GetAlerts returns the active alerts for a two-letter state code as text.
// The code is normalized to upper case but not otherwise validated.
func (s *Service) GetAlerts(ctx context.Context, state string) string {
	state = strings.ToUpper(strings.TrimSpace(state))

	collection, err := s.api.ActiveAlerts(ctx, state)
	if err != nil {
		s.logFailure("get_alerts", err, log.Fields{"state": state})
		return MsgAlertsUnavailable
	}

	// A body without a features key is treated like a failed call
	if collection == nil || collection.Features == nil {
		return MsgAlertsUnavailable
	}

	if len(collection.Features) == 0 {
		return MsgNoActiveAlerts
	}

	blocks := make([]string, 0, len(collection.Features))
	for _, feature := range collection.Features {
		blocks = append(blocks, toAlertRecord(feature).Format())
	}

	s.logger.WithFields(log.Fields{"state": state, "alerts": len(blocks)}).Debug("alerts formatted")
	return joinBlocks(blocks)
}

func toAlertRecord(feature nws.AlertFeature) models.AlertRecord {
	props := feature.Properties
	return models.NewAlertRecord(
		props.Event,
		props.AreaDesc,
		props.Severity,
		props.Status,
		props.Description,
		props.Instruction,
	)
}
