package services

import (
	"testing"

	"github.com/tse-auto/catalogue-server/internal/models"
)

// TestGetBrands verifies vehicle counts, including zero-count brands
func TestGetBrands(t *testing.T) {
	db := setupTestDB(t)
	seedCatalogue(t, db)

	// A brand with no vehicles still shows up
	empty := models.Brand{Nom: "Alpine"}
	if err := db.Create(&empty).Error; err != nil {
		t.Fatalf("Failed to create brand: %v", err)
	}

	brands, err := GetBrands(db)
	if err != nil {
		t.Fatalf("GetBrands failed: %v", err)
	}

	if len(brands) != 2 {
		t.Fatalf("Expected 2 brands, got %d", len(brands))
	}

	// Sorted by name: Alpine first
	if brands[0].Nom != "Alpine" || brands[0].VehicleCount != 0 {
		t.Errorf("Expected Alpine with 0 vehicles, got %s with %d", brands[0].Nom, brands[0].VehicleCount)
	}
	if brands[1].Nom != "Toyota" || brands[1].VehicleCount != 4 {
		t.Errorf("Expected Toyota with 4 vehicles, got %s with %d", brands[1].Nom, brands[1].VehicleCount)
	}
}

// TestGetModelsByBrand verifies the model listing and the missing-brand error
func TestGetModelsByBrand(t *testing.T) {
	db := setupTestDB(t)
	brandID, _ := seedCatalogue(t, db)

	modeles, err := GetModelsByBrand(db, brandID)
	if err != nil {
		t.Fatalf("GetModelsByBrand failed: %v", err)
	}
	if len(modeles) != 1 {
		t.Fatalf("Expected 1 model, got %d", len(modeles))
	}
	if modeles[0].Nom != "Corolla" || modeles[0].VehicleCount != 4 {
		t.Errorf("Expected Corolla with 4 vehicles, got %s with %d", modeles[0].Nom, modeles[0].VehicleCount)
	}

	if _, err := GetModelsByBrand(db, "00000000-0000-0000-0000-000000000000"); err == nil || err.Error() != "not found" {
		t.Errorf("Expected not found error, got %v", err)
	}
}

// TestGetYearsByModel verifies grouping, ordering and price ranges
func TestGetYearsByModel(t *testing.T) {
	db := setupTestDB(t)
	_, modelID := seedCatalogue(t, db)

	years, err := GetYearsByModel(db, modelID)
	if err != nil {
		t.Fatalf("GetYearsByModel failed: %v", err)
	}

	// The 2020 vehicle is sold, so only 2022 and 2021 remain
	if len(years) != 2 {
		t.Fatalf("Expected 2 year groups, got %d", len(years))
	}

	// Newest year first
	if years[0].Annee != 2022 || years[1].Annee != 2021 {
		t.Errorf("Expected years [2022 2021], got [%d %d]", years[0].Annee, years[1].Annee)
	}
	if years[0].VehicleCount != 2 {
		t.Errorf("Expected 2 vehicles in 2022, got %d", years[0].VehicleCount)
	}
	if years[0].PrixMin == nil || *years[0].PrixMin != 15000 {
		t.Errorf("Expected 2022 prixMin 15000, got %v", years[0].PrixMin)
	}
	if years[0].PrixMax == nil || *years[0].PrixMax != 18000 {
		t.Errorf("Expected 2022 prixMax 18000, got %v", years[0].PrixMax)
	}
	if years[1].VehicleCount != 1 {
		t.Errorf("Expected 1 vehicle in 2021, got %d", years[1].VehicleCount)
	}
}

// TestGetVehiclesByCriteria verifies the availability guard and filters
func TestGetVehiclesByCriteria(t *testing.T) {
	db := setupTestDB(t)
	brandID, modelID := seedCatalogue(t, db)

	// No filters: only available vehicles
	all, err := GetVehiclesByCriteria(db, VehicleFilters{})
	if err != nil {
		t.Fatalf("GetVehiclesByCriteria failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 available vehicles, got %d", len(all))
	}
	for _, v := range all {
		if v.Statut != models.StatutDisponible {
			t.Errorf("Unexpected status %s in public listing", v.Statut)
		}
		if v.Brand == nil || v.Modele == nil {
			t.Error("Expected brand and model preloaded")
		}
	}

	// Year filter
	year2022, err := GetVehiclesByCriteria(db, VehicleFilters{BrandID: brandID, ModelID: modelID, Annee: 2022})
	if err != nil {
		t.Fatalf("GetVehiclesByCriteria failed: %v", err)
	}
	if len(year2022) != 2 {
		t.Errorf("Expected 2 vehicles for 2022, got %d", len(year2022))
	}

	// Fuel + price range
	min := 14000.0
	filtered, err := GetVehiclesByCriteria(db, VehicleFilters{
		Carburant: models.CarburantEssence,
		PrixMin:   &min,
	})
	if err != nil {
		t.Fatalf("GetVehiclesByCriteria failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 vehicle, got %d", len(filtered))
	}
	if filtered[0].Couleur != "Rouge" {
		t.Errorf("Expected the red vehicle, got %s", filtered[0].Couleur)
	}
}
