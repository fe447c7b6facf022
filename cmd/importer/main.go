package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"georoute-api/internal/config"
	"georoute-api/internal/repository"

	"github.com/jackc/pgx/v5"
)

// PlaceRecord is one row of the seed CSV: place,latitude,longitude,address,postal_code
type PlaceRecord struct {
	Place      string
	Lat        float64
	Lon        float64
	Address    string
	PostalCode string
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DBSource == "" {
		fmt.Println("Error: db_source must be configured for the importer")
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure table exists
	err = createTableIfNotExists(conn)
	if err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	err = insertRecords(conn, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	err = verifyImport(conn, len(records))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
}

func parseCSV(path string) ([]PlaceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	records := make([]PlaceRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i+1, len(row))
		}

		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid latitude %q", i+1, row[1])
		}
		lon, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid longitude %q", i+1, row[2])
		}

		rec := PlaceRecord{Place: row[0], Lat: lat, Lon: lon}
		if len(row) > 3 {
			rec.Address = row[3]
		}
		if len(row) > 4 {
			rec.PostalCode = row[4]
		}
		records = append(records, rec)
	}

	return records, nil
}

func createTableIfNotExists(conn *pgx.Conn) error {
	_, err := conn.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS resolution_cache (
			place TEXT PRIMARY KEY,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			postal_code TEXT NOT NULL DEFAULT '',
			resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func insertRecords(conn *pgx.Conn, records []PlaceRecord) error {
	for _, rec := range records {
		_, err := conn.Exec(context.Background(), `
			INSERT INTO resolution_cache (place, latitude, longitude, address, postal_code)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (place) DO UPDATE
			SET latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude,
				address = EXCLUDED.address,
				postal_code = EXCLUDED.postal_code
		`, repository.NormalizePlace(rec.Place), rec.Lat, rec.Lon, rec.Address, rec.PostalCode)
		if err != nil {
			return fmt.Errorf("insert place %q: %w", rec.Place, err)
		}
	}
	return nil
}

func verifyImport(conn *pgx.Conn, expected int) error {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM resolution_cache").Scan(&count)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	if count < expected {
		return fmt.Errorf("expected at least %d rows, found %d", expected, count)
	}
	fmt.Printf("Verified %d rows in resolution_cache\n", count)
	return nil
}
