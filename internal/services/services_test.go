package services

import (
	"testing"

	"github.com/tse-auto/catalogue-server/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Brand{},
		&models.VehicleModel{},
		&models.Vehicle{},
		&models.Equipment{},
		&models.VehicleImage{},
		&models.VehicleDocument{},
		&models.AdminUser{},
		&models.UserSession{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedCatalogue creates one brand, one model and a set of vehicles for the
// drill-down tests. Returns the brand and model ids.
func seedCatalogue(t *testing.T, db *gorm.DB) (string, string) {
	brand := models.Brand{Nom: "Toyota"}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("Failed to create brand: %v", err)
	}

	modele := models.VehicleModel{Nom: "Corolla", BrandID: brand.ID}
	if err := db.Create(&modele).Error; err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}

	prix1, prix2, prix3 := 15000.0, 18000.0, 12000.0
	vehicules := []models.Vehicle{
		{BrandID: brand.ID, ModelID: modele.ID, Annee: 2022, Couleur: "Rouge", Prix: &prix1,
			Carburant: models.CarburantEssence, Transmission: models.TransmissionManuelle, Statut: models.StatutDisponible},
		{BrandID: brand.ID, ModelID: modele.ID, Annee: 2022, Couleur: "Bleu", Prix: &prix2,
			Carburant: models.CarburantDiesel, Transmission: models.TransmissionAutomatique, Statut: models.StatutDisponible},
		{BrandID: brand.ID, ModelID: modele.ID, Annee: 2021, Couleur: "Gris", Prix: &prix3,
			Carburant: models.CarburantEssence, Transmission: models.TransmissionManuelle, Statut: models.StatutDisponible},
		// Sold vehicles stay out of the public drill-down
		{BrandID: brand.ID, ModelID: modele.ID, Annee: 2020, Couleur: "Noir",
			Carburant: models.CarburantEssence, Transmission: models.TransmissionManuelle, Statut: models.StatutVendu},
	}
	for i := range vehicules {
		if err := db.Create(&vehicules[i]).Error; err != nil {
			t.Fatalf("Failed to create vehicle: %v", err)
		}
	}

	return brand.ID, modele.ID
}
