package nws

import (
	"context"
	"fmt"
)

// ActiveAlerts retrieves active alerts for a two-letter state code.
// The code is passed through as given; an invalid code surfaces as an
// upstream error or an empty collection.
func (c *Client) ActiveAlerts(ctx context.Context, state string) (*AlertCollection, error) {
	var collection AlertCollection
	if err := c.Fetch(ctx, c.AlertsURL(state), &collection); err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	return &collection, nil
}

// AlertCollection is the GeoJSON feature collection returned by the alerts
// endpoint. Features is nil when the key is absent and empty when the
// collection has no alerts.
type AlertCollection struct {
	Title    string         `json:"title"`
	Updated  string         `json:"updated"`
	Features []AlertFeature `json:"features"`
}

// AlertFeature is one alert in the collection
type AlertFeature struct {
	ID         string          `json:"id"`
	Properties AlertProperties `json:"properties"`
}

// AlertProperties holds the CAP fields the NWS exposes for an alert
type AlertProperties struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	AreaDesc    string `json:"areaDesc"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	Urgency     string `json:"urgency"`
	Certainty   string `json:"certainty"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Onset       string `json:"onset"`
	Expires     string `json:"expires"`
}
