package geocoding

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/weather-mcp/internal/database"
)

// DefaultZipcodeCSVURL is the source of the zipcodes table
const DefaultZipcodeCSVURL = "https://raw.githubusercontent.com/midwire/free_zipcode_data/develop/all_us_zipcodes.csv"

const zipcodeSchema = `
	CREATE TABLE IF NOT EXISTS zipcodes (
		zipcode TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_state ON zipcodes(state);
`

// NeedsProvisioning reports whether the zipcodes table is missing
func NeedsProvisioning(db *sql.DB) (bool, error) {
	exists, err := database.TableExists(db, "zipcodes")
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Provision downloads the zipcode CSV from csvURL and builds the zipcodes
// table. It is a no-op when the table already exists.
func Provision(ctx context.Context, db *sql.DB, csvURL string) error {
	needed, err := NeedsProvisioning(db)
	if err != nil {
		return err
	}
	if !needed {
		return nil
	}

	log.WithField("url", csvURL).Info("zipcode table not found, provisioning")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, csvURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading zipcode CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading zipcode CSV: HTTP error: %d", resp.StatusCode)
	}

	count, err := ImportZipcodes(ctx, db, resp.Body)
	if err != nil {
		return fmt.Errorf("building zipcode table: %w", err)
	}

	log.WithField("zipcodes", count).Info("provisioned zipcode table")
	return nil
}

// ImportZipcodes creates the zipcodes table if needed and loads rows from a
// free_zipcode_data CSV. Malformed rows are skipped. The table is created in
// the same transaction as the rows, so a failed import leaves no table behind.
func ImportZipcodes(ctx context.Context, db *sql.DB, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}

	// Begin transaction for faster inserts
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, zipcodeSchema); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO zipcodes (zipcode, city, state, latitude, longitude) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue // Skip invalid records
		}

		// CSV format: Zipcode,ZipCodeType,City,State,LocationType,Lat,Long,...
		if len(record) < 7 {
			continue
		}

		lat, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			continue
		}

		if _, err := stmt.ExecContext(ctx, record[0], record[2], record[3], lat, lon); err != nil {
			continue
		}

		count++
		if count%5000 == 0 {
			log.WithField("zipcodes", count).Debug("importing zipcodes")
		}
	}

	if count == 0 {
		return 0, errors.New("no valid zipcode rows")
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
