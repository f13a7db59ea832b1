package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPath(t *testing.T) {
	expected := filepath.Join("data", "weather-mcp.db")
	if got := DefaultPath(); got != expected {
		t.Errorf("DefaultPath() = %v, want %v", got, expected)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "weather_mcp_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}

func TestTableExists(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	defer db.Close()

	exists, err := TableExists(db, "zipcodes")
	if err != nil {
		t.Fatalf("TableExists() error = %v", err)
	}
	if exists {
		t.Error("TableExists() = true before table was created")
	}

	if _, err := db.Exec(`CREATE TABLE zipcodes (zipcode TEXT PRIMARY KEY)`); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	exists, err = TableExists(db, "zipcodes")
	if err != nil {
		t.Fatalf("TableExists() error = %v", err)
	}
	if !exists {
		t.Error("TableExists() = false after table was created")
	}
}
