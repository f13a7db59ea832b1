// Package app wires configuration into the logger, the NWS client and the
// weather service shared by the server and the terminal client.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/config"
	"github.com/ngmaloney/weather-mcp/internal/database"
	"github.com/ngmaloney/weather-mcp/internal/geocoding"
	"github.com/ngmaloney/weather-mcp/internal/nws"
	"github.com/ngmaloney/weather-mcp/internal/weather"
)

// ConfigureLogging applies the log level and format to the standard logrus
// logger and sends output to out
func ConfigureLogging(cfg config.LogConfig, out io.Writer) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(out)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return nil
}

// Service is the weather service plus the resources it holds open
type Service struct {
	*weather.Service
	db *sql.DB
}

// Close releases the zipcode database, if one was opened
func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewService builds the weather service described by cfg. The zipcode
// locator is attached only when a database path is configured and the
// zipcodes table is present or provisioned.
func NewService(ctx context.Context, cfg config.Config) (*Service, error) {
	client := nws.NewClient(
		nws.WithBaseURL(cfg.NWS.BaseURL),
		nws.WithUserAgent(cfg.NWS.UserAgent),
		nws.WithTimeout(cfg.NWS.Timeout),
	)

	opts := []weather.Option{weather.WithMaxPeriods(cfg.NWS.MaxPeriods)}

	var db *sql.DB
	if cfg.Zipcode.Path() != "" {
		var err error
		db, err = openZipcodes(ctx, cfg.Zipcode)
		if err != nil {
			return nil, err
		}
		if db != nil {
			opts = append(opts, weather.WithLocator(geocoding.NewGeocoder(db)))
		}
	}

	return &Service{Service: weather.NewService(client, opts...), db: db}, nil
}

// openZipcodes opens the zipcode database. It returns a nil *sql.DB when the
// table is missing and provisioning is off.
func openZipcodes(ctx context.Context, cfg config.ZipcodeConfig) (*sql.DB, error) {
	path := cfg.Path()
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening zipcode database: %w", err)
	}

	if cfg.Provision {
		csvURL := cfg.CSVURL
		if csvURL == "" {
			csvURL = geocoding.DefaultZipcodeCSVURL
		}
		if err := geocoding.Provision(ctx, db, csvURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("provisioning zipcodes: %w", err)
		}
		return db, nil
	}

	needed, err := geocoding.NeedsProvisioning(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if needed {
		log.WithField("path", path).Warn("zipcodes table missing; zipcode forecasts disabled (run with -provision)")
		db.Close()
		return nil, nil
	}
	return db, nil
}
