package models

import (
	"fmt"
	"strings"
)

// AlertSeverity represents the severity level of an alert
type AlertSeverity string

const (
	SeverityExtreme  AlertSeverity = "Extreme"
	SeveritySevere   AlertSeverity = "Severe"
	SeverityModerate AlertSeverity = "Moderate"
	SeverityMinor    AlertSeverity = "Minor"
	SeverityUnknown  AlertSeverity = "Unknown"
)

// Placeholders rendered in place of fields the NWS omits or leaves blank
const (
	PlaceholderUnknown      = "Unknown"
	PlaceholderDescription  = "No description available"
	PlaceholderInstructions = "No specific instructions provided"
)

// ParseSeverity maps an NWS severity string onto AlertSeverity.
// Anything outside the CAP levels is reported as SeverityUnknown.
func ParseSeverity(s string) AlertSeverity {
	switch strings.TrimSpace(s) {
	case "Extreme":
		return SeverityExtreme
	case "Severe":
		return SeveritySevere
	case "Moderate":
		return SeverityModerate
	case "Minor":
		return SeverityMinor
	default:
		return SeverityUnknown
	}
}

// AlertRecord is a single active alert reduced to the fields shown to callers
type AlertRecord struct {
	Event        string // e.g., "Winter Storm Warning"
	Area         string // NWS areaDesc
	Severity     AlertSeverity
	Status       string // e.g., "Actual", "Test"; kept for callers, not rendered
	Description  string
	Instructions string
}

// NewAlertRecord builds an AlertRecord from raw NWS property values,
// substituting placeholders for anything missing.
func NewAlertRecord(event, area, severity, status, description, instructions string) AlertRecord {
	return AlertRecord{
		Event:        orDefault(event, PlaceholderUnknown),
		Area:         orDefault(area, PlaceholderUnknown),
		Severity:     ParseSeverity(severity),
		Status:       orDefault(status, PlaceholderUnknown),
		Description:  orDefault(description, PlaceholderDescription),
		Instructions: orDefault(instructions, PlaceholderInstructions),
	}
}

// Format renders the alert as the fixed multi-line text block
func (a AlertRecord) Format() string {
	severity := string(a.Severity)
	if severity == "" {
		severity = string(SeverityUnknown)
	}

	lines := []string{
		fmt.Sprintf("Event: %s", orDefault(a.Event, PlaceholderUnknown)),
		fmt.Sprintf("Area: %s", orDefault(a.Area, PlaceholderUnknown)),
		fmt.Sprintf("Severity: %s", severity),
		fmt.Sprintf("Description: %s", orDefault(a.Description, PlaceholderDescription)),
		fmt.Sprintf("Instructions: %s", orDefault(a.Instructions, PlaceholderInstructions)),
	}
	return strings.Join(lines, "\n")
}

// orDefault returns fallback when s is empty or whitespace
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
