package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ngmaloney/weather-mcp/internal/database"
)

const testCSV = `Zipcode,ZipCodeType,City,State,LocationType,Lat,Long,Location,Decommisioned
55401,STANDARD,MINNEAPOLIS,MN,PRIMARY,44.98,-93.27,NA-US-MN-MINNEAPOLIS,false
02633,STANDARD,CHATHAM,MA,PRIMARY,41.68,-69.96,NA-US-MA-CHATHAM,false
99999,STANDARD,NOWHERE,XX,PRIMARY,not-a-number,-1,NA,false
short,row
`

func newTestGeocoder(t *testing.T) *Geocoder {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	count, err := ImportZipcodes(context.Background(), db, strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("ImportZipcodes() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("ImportZipcodes() count = %d, want 2", count)
	}

	return NewGeocoder(db)
}

func TestIsZipcode(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"12345", true},
		{"12345-6789", true},
		{"02139", true},
		{"1234", false},
		{"123456", false},
		{"abcde", false},
		{"12a45", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsZipcode(tt.input); got != tt.expected {
				t.Errorf("IsZipcode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGeocoder_LookupZipcode(t *testing.T) {
	g := newTestGeocoder(t)

	tests := []struct {
		name     string
		zipcode  string
		wantName string
		wantErr  error
	}{
		{"existing zipcode", "55401", "MINNEAPOLIS, MN 55401", nil},
		{"zip plus four", "02633-1234", "CHATHAM, MA 02633", nil},
		{"non-existent zipcode", "99999", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := g.LookupZipcode(context.Background(), tt.zipcode)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LookupZipcode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupZipcode() error = %v, want nil", err)
			}
			if loc.Name != tt.wantName {
				t.Errorf("LookupZipcode() name = %v, want %v", loc.Name, tt.wantName)
			}
		})
	}
}

func TestGeocoder_LookupZipcode_Invalid(t *testing.T) {
	g := newTestGeocoder(t)

	_, err := g.LookupZipcode(context.Background(), "abc")
	if err == nil {
		t.Fatal("LookupZipcode() expected error, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("invalid zipcode should not be reported as ErrNotFound")
	}
}

func TestProvision(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(testCSV))
	}))
	defer server.Close()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	defer db.Close()

	needed, err := NeedsProvisioning(db)
	if err != nil {
		t.Fatalf("NeedsProvisioning() error = %v", err)
	}
	if !needed {
		t.Fatal("NeedsProvisioning() = false on empty database")
	}

	ctx := context.Background()
	if err := Provision(ctx, db, server.URL); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	// Second call must not download again
	if err := Provision(ctx, db, server.URL); err != nil {
		t.Fatalf("second Provision() error = %v", err)
	}
	if requests != 1 {
		t.Errorf("downloads = %d, want 1", requests)
	}

	loc, err := NewGeocoder(db).LookupZipcode(ctx, "55401")
	if err != nil {
		t.Fatalf("LookupZipcode() error = %v", err)
	}
	if loc.Latitude != 44.98 || loc.Longitude != -93.27 {
		t.Errorf("location = (%v, %v), want (44.98, -93.27)", loc.Latitude, loc.Longitude)
	}
}

func TestProvision_DownloadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	defer db.Close()

	if err := Provision(context.Background(), db, server.URL); err == nil {
		t.Error("Provision() expected error for 502 response, got nil")
	}
}

func TestProvision_EmptyDownloadLeavesTableMissing(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"header only", "Zipcode,ZipCodeType,City,State,LocationType,Lat,Long\n"},
		{"no valid rows", "Zipcode,ZipCodeType,City,State,LocationType,Lat,Long\nshort,row\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			db, err := database.Open(":memory:")
			if err != nil {
				t.Fatalf("Failed to open in-memory database: %v", err)
			}
			defer db.Close()

			if err := Provision(context.Background(), db, server.URL); err == nil {
				t.Error("Provision() expected error, got nil")
			}

			needed, err := NeedsProvisioning(db)
			if err != nil {
				t.Fatalf("NeedsProvisioning() error = %v", err)
			}
			if !needed {
				t.Error("NeedsProvisioning() = false after a failed import, want true")
			}
		})
	}
}
