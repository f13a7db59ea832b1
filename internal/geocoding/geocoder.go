// Package geocoding resolves US zipcodes to coordinates using a local
// SQLite table built from the public free_zipcode_data CSV.
package geocoding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is returned when a zipcode is not in the table
var ErrNotFound = errors.New("location not found")

var zipcodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Location represents a geocoded location
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Geocoder converts zipcodes to coordinates using the zipcodes table
type Geocoder struct {
	db *sql.DB
}

// NewGeocoder creates a geocoder over an open database that already
// contains the zipcodes table
func NewGeocoder(db *sql.DB) *Geocoder {
	return &Geocoder{db: db}
}

// IsZipcode checks if a string looks like a US zipcode
func IsZipcode(s string) bool {
	// Match 5-digit or 9-digit (with hyphen) zipcodes
	return zipcodePattern.MatchString(s)
}

// LookupZipcode looks up a zipcode and returns its Location. ZIP+4 codes are
// resolved by their 5-digit prefix.
func (g *Geocoder) LookupZipcode(ctx context.Context, zipcode string) (*Location, error) {
	zipcode = strings.TrimSpace(zipcode)
	if !IsZipcode(zipcode) {
		return nil, fmt.Errorf("invalid zipcode %q", zipcode)
	}
	zipcode = zipcode[:5]

	var city, state string
	var lat, lon float64

	err := g.db.QueryRowContext(ctx,
		"SELECT city, state, latitude, longitude FROM zipcodes WHERE zipcode = ?",
		zipcode,
	).Scan(&city, &state, &lat, &lon)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("zipcode %s: %w", zipcode, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying zipcode: %w", err)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      fmt.Sprintf("%s, %s %s", city, state, zipcode),
	}, nil
}
