package services

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestExportVehiclesCSV(t *testing.T) {
	db := setupTestDB(t)
	seedCatalogue(t, db)

	var buf bytes.Buffer
	if err := ExportVehiclesCSV(db, &buf); err != nil {
		t.Fatalf("ExportVehiclesCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Export is not valid CSV: %v", err)
	}

	// Header + 4 vehicles
	if len(records) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(records))
	}
	if records[0][1] != "marque" || records[0][2] != "modele" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	for _, row := range records[1:] {
		if row[1] != "Toyota" || row[2] != "Corolla" {
			t.Errorf("Expected Toyota Corolla rows, got %v", row)
		}
	}
}

func TestExportStatsByBrandCSV(t *testing.T) {
	db := setupTestDB(t)
	seedCatalogue(t, db)

	var buf bytes.Buffer
	if err := ExportStatsByBrandCSV(db, &buf); err != nil {
		t.Fatalf("ExportStatsByBrandCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Export is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 brand, got %d rows", len(records))
	}

	// Toyota: 4 vehicles, 3 available, 45000 total value
	row := records[1]
	if row[0] != "Toyota" || row[1] != "4" || row[2] != "3" || row[3] != "45000" {
		t.Errorf("Unexpected stats row: %v", row)
	}
}
