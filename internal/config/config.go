// Package config loads server configuration from defaults, an optional YAML
// file, an optional .env file and the process environment, in that order of
// increasing precedence. The resulting Config is read-only after Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/weather-mcp/internal/database"
	"github.com/ngmaloney/weather-mcp/internal/nws"
	"github.com/ngmaloney/weather-mcp/internal/weather"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds all configuration for the weather server
type Config struct {
	NWS     NWSConfig     `yaml:"nws"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Zipcode ZipcodeConfig `yaml:"zipcode"`
}

// NWSConfig configures the upstream client
type NWSConfig struct {
	BaseURL    string        `yaml:"base_url"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxPeriods int           `yaml:"max_periods"`
}

// ServerConfig configures how the tools are exposed
type ServerConfig struct {
	Transport string `yaml:"transport"` // "http" or "stdio"
	Addr      string `yaml:"addr"`
}

// LogConfig configures logrus
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// ZipcodeConfig configures the optional zipcode forecast tool.
// An empty DBPath disables it unless Provision is set.
type ZipcodeConfig struct {
	DBPath    string `yaml:"db_path"`
	CSVURL    string `yaml:"csv_url"`
	Provision bool   `yaml:"provision"`
}

// Path returns the zipcode database location. Provisioning without an
// explicit path uses database.DefaultPath.
func (z ZipcodeConfig) Path() string {
	if z.DBPath == "" && z.Provision {
		return database.DefaultPath()
	}
	return z.DBPath
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		NWS: NWSConfig{
			BaseURL:    nws.DefaultBaseURL,
			UserAgent:  nws.DefaultUserAgent,
			Timeout:    nws.DefaultTimeout,
			MaxPeriods: weather.DefaultMaxPeriods,
		},
		Server: ServerConfig{
			Transport: TransportHTTP,
			Addr:      ":8000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. yamlPath and envPath may name files that do
// not exist; missing files are skipped.
func Load(yamlPath, envPath string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		if err := cfg.loadYAML(yamlPath); err != nil {
			return Config{}, err
		}
	}

	if envPath != "" {
		// Existing environment variables win over the .env file
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.NWS.BaseURL = getEnv("NWS_BASE_URL", c.NWS.BaseURL)
	c.NWS.UserAgent = getEnv("NWS_USER_AGENT", c.NWS.UserAgent)
	c.Server.Transport = getEnv("WEATHER_TRANSPORT", c.Server.Transport)
	c.Server.Addr = getEnv("WEATHER_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Zipcode.DBPath = getEnv("ZIPCODE_DB", c.Zipcode.DBPath)
	c.Zipcode.CSVURL = getEnv("ZIPCODE_CSV_URL", c.Zipcode.CSVURL)

	if v, ok := os.LookupEnv("NWS_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NWS_TIMEOUT %q: %w", v, err)
		}
		c.NWS.Timeout = d
	}

	if v, ok := os.LookupEnv("NWS_MAX_PERIODS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NWS_MAX_PERIODS %q: %w", v, err)
		}
		c.NWS.MaxPeriods = n
	}

	if v, ok := os.LookupEnv("ZIPCODE_PROVISION"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ZIPCODE_PROVISION %q: %w", v, err)
		}
		c.Zipcode.Provision = b
	}
	return nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if strings.TrimSpace(c.NWS.BaseURL) == "" {
		return errors.New("nws base_url must be set")
	}
	if strings.TrimSpace(c.NWS.UserAgent) == "" {
		return errors.New("nws user_agent must be set")
	}
	if c.NWS.Timeout <= 0 {
		return fmt.Errorf("nws timeout must be positive, got %s", c.NWS.Timeout)
	}
	if c.NWS.MaxPeriods <= 0 {
		return fmt.Errorf("nws max_periods must be positive, got %d", c.NWS.MaxPeriods)
	}
	switch c.Server.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown transport %q (want %q or %q)", c.Server.Transport, TransportHTTP, TransportStdio)
	}
	return nil
}

// getEnv is a helper to read an env var or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
