package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/handlers"
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
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload interface{}) (int, map[string]interface{}) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

// TestBrandCreateAndConflict tests POST /api/brands including the duplicate
// name conflict
func TestBrandCreateAndConflict(t *testing.T) {
	db := setupTestDB(t)
	app := fiber.New()
	handler := &handlers.BrandHandler{DB: db}
	app.Post("/api/brands", handler.Create)

	status, result := doJSON(t, app, "POST", "/api/brands", map[string]interface{}{
		"nom": "Toyota",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d (%v)", status, result)
	}
	if result["nom"] != "Toyota" {
		t.Errorf("Expected created brand in response, got %v", result)
	}

	// Same name, different case: conflict
	status, _ = doJSON(t, app, "POST", "/api/brands", map[string]interface{}{
		"nom": "TOYOTA",
	})
	if status != 409 {
		t.Errorf("Expected status 409, got %d", status)
	}
}

// TestBrandListSearch tests the search filter and its recherche alias
func TestBrandListSearch(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Brand{Nom: "Toyota"})
	db.Create(&models.Brand{Nom: "Renault"})

	app := fiber.New()
	handler := &handlers.BrandHandler{DB: db}
	app.Get("/api/brands", handler.List)

	status, result := doJSON(t, app, "GET", "/api/brands?search=toy", nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	items, ok := result["items"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("Expected 1 matching brand, got %v", result["items"])
	}
	if items[0].(map[string]interface{})["nom"] != "Toyota" {
		t.Errorf("Expected Toyota, got %v", items[0])
	}
	if result["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", result["total"])
	}

	status, result = doJSON(t, app, "GET", "/api/brands?recherche=ren", nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	items, _ = result["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("Expected the alias to filter too, got %v", result["items"])
	}
}

// TestBrandCreateValidation tests the 400 envelope with field errors
func TestBrandCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	app := fiber.New()
	handler := &handlers.BrandHandler{DB: db}
	app.Post("/api/brands", handler.Create)

	status, result := doJSON(t, app, "POST", "/api/brands", map[string]interface{}{
		"nom":  "",
		"logo": "pas une url",
	})
	if status != 400 {
		t.Fatalf("Expected status 400, got %d", status)
	}
	if result["message"] != "Validation échouée" {
		t.Errorf("Expected validation message, got %v", result["message"])
	}
	errs, ok := result["errors"].([]interface{})
	if !ok || len(errs) != 2 {
		t.Errorf("Expected 2 field errors, got %v", result["errors"])
	}
}

// TestBrandDeleteBlocked tests the dependent-rows conflict on delete
func TestBrandDeleteBlocked(t *testing.T) {
	db := setupTestDB(t)

	brand := models.Brand{Nom: "Peugeot"}
	db.Create(&brand)
	db.Create(&models.VehicleModel{Nom: "208", BrandID: brand.ID})

	app := fiber.New()
	handler := &handlers.BrandHandler{DB: db}
	app.Delete("/api/brands/:id", handler.Delete)

	req := httptest.NewRequest("DELETE", "/api/brands/"+brand.ID, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Brand{}).Count(&count)
	if count != 1 {
		t.Error("Brand must survive a blocked delete")
	}
}

// TestVehicleCreateWithStringNumbers tests that form-style string numerics are
// accepted in the vehicle payload
func TestVehicleCreateWithStringNumbers(t *testing.T) {
	db := setupTestDB(t)

	brand := models.Brand{Nom: "Hyundai"}
	db.Create(&brand)
	modele := models.VehicleModel{Nom: "Tucson", BrandID: brand.ID}
	db.Create(&modele)

	app := fiber.New()
	handler := &handlers.VehicleHandler{DB: db}
	app.Post("/api/vehicules", handler.Create)

	status, result := doJSON(t, app, "POST", "/api/vehicules", map[string]interface{}{
		"brand_id":     brand.ID,
		"model_id":     modele.ID,
		"annee":        "2023",
		"couleur":      "Gris",
		"prix":         "25000.50",
		"kilometrage":  "12000",
		"carburant":    "Essence",
		"transmission": "Automatique",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d (%v)", status, result)
	}

	var vehicule models.Vehicle
	if err := db.First(&vehicule).Error; err != nil {
		t.Fatalf("Failed to load created vehicle: %v", err)
	}
	if vehicule.Annee != 2023 {
		t.Errorf("Expected year 2023, got %d", vehicule.Annee)
	}
	if vehicule.Prix == nil || *vehicule.Prix != 25000.50 {
		t.Errorf("Expected price 25000.50, got %v", vehicule.Prix)
	}
	if vehicule.Kilometrage == nil || *vehicule.Kilometrage != 12000 {
		t.Errorf("Expected mileage 12000, got %v", vehicule.Kilometrage)
	}
	if vehicule.Statut != models.StatutDisponible {
		t.Errorf("Expected default status Disponible, got %s", vehicule.Statut)
	}
}

// TestVehicleCreateRejectsNegativeMileage tests that a negative kilometrage
// produces the field validation message, not a body-parse failure
func TestVehicleCreateRejectsNegativeMileage(t *testing.T) {
	db := setupTestDB(t)

	brand := models.Brand{Nom: "Hyundai"}
	db.Create(&brand)
	modele := models.VehicleModel{Nom: "Tucson", BrandID: brand.ID}
	db.Create(&modele)

	app := fiber.New()
	handler := &handlers.VehicleHandler{DB: db}
	app.Post("/api/vehicules", handler.Create)

	for _, kilometrage := range []interface{}{-5, "-5"} {
		status, result := doJSON(t, app, "POST", "/api/vehicules", map[string]interface{}{
			"brand_id":     brand.ID,
			"model_id":     modele.ID,
			"annee":        2023,
			"couleur":      "Gris",
			"kilometrage":  kilometrage,
			"carburant":    models.CarburantEssence,
			"transmission": models.TransmissionManuelle,
		})
		if status != 400 {
			t.Fatalf("kilometrage %v: expected status 400, got %d", kilometrage, status)
		}
		if result["message"] != "Validation échouée" {
			t.Errorf("kilometrage %v: expected the validation envelope, got %v", kilometrage, result["message"])
		}
		errs, _ := result["errors"].([]interface{})
		found := false
		for _, e := range errs {
			if e == "Le kilométrage ne peut pas être négatif" {
				found = true
			}
		}
		if !found {
			t.Errorf("kilometrage %v: expected the mileage error, got %v", kilometrage, result["errors"])
		}
	}
}

// TestVehicleCreateRejectsBadModel tests the brand/model ownership check
func TestVehicleCreateRejectsBadModel(t *testing.T) {
	db := setupTestDB(t)

	brand := models.Brand{Nom: "Hyundai"}
	db.Create(&brand)
	other := models.Brand{Nom: "Kia"}
	db.Create(&other)
	foreignModel := models.VehicleModel{Nom: "Sportage", BrandID: other.ID}
	db.Create(&foreignModel)

	app := fiber.New()
	handler := &handlers.VehicleHandler{DB: db}
	app.Post("/api/vehicules", handler.Create)

	// The model belongs to another brand
	status, _ := doJSON(t, app, "POST", "/api/vehicules", map[string]interface{}{
		"brand_id":     brand.ID,
		"model_id":     foreignModel.ID,
		"annee":        2023,
		"couleur":      "Gris",
		"carburant":    "Essence",
		"transmission": "Manuelle",
	})
	if status != 404 {
		t.Errorf("Expected status 404, got %d", status)
	}
}

// TestVehicleBulkStatusUpdate tests PUT /api/vehicules/bulk with a single id
// given as a bare string instead of a list
func TestVehicleBulkStatusUpdate(t *testing.T) {
	db := setupTestDB(t)

	brand := models.Brand{Nom: "Mitsubishi"}
	db.Create(&brand)
	modele := models.VehicleModel{Nom: "Pajero", BrandID: brand.ID}
	db.Create(&modele)
	vehicule := models.Vehicle{
		BrandID: brand.ID, ModelID: modele.ID, Annee: 2020, Couleur: "Noir",
		Carburant: models.CarburantDiesel, Transmission: models.TransmissionManuelle,
		Statut: models.StatutDisponible,
	}
	db.Create(&vehicule)

	app := fiber.New()
	handler := &handlers.VehicleHandler{DB: db}
	app.Put("/api/vehicules/bulk", handler.Bulk)

	status, result := doJSON(t, app, "PUT", "/api/vehicules/bulk", map[string]interface{}{
		"operation":    "update_status",
		"vehicule_ids": vehicule.ID,
		"statut":       models.StatutVendu,
	})
	if status != 200 {
		t.Fatalf("Expected status 200, got %d (%v)", status, result)
	}
	if result["affectedRows"] != float64(1) {
		t.Errorf("Expected 1 affected row, got %v", result["affectedRows"])
	}

	var updated models.Vehicle
	db.First(&updated, "id = ?", vehicule.ID)
	if updated.Statut != models.StatutVendu {
		t.Errorf("Expected status Vendu, got %s", updated.Statut)
	}
}

// TestCatalogueBrands tests the public brand listing
func TestCatalogueBrands(t *testing.T) {
	db := setupTestDB(t)

	brand := models.Brand{Nom: "Toyota"}
	db.Create(&brand)

	app := fiber.New()
	handler := &handlers.CatalogHandler{DB: db}
	app.Get("/api/catalogue/brands", handler.GetBrands)

	req := httptest.NewRequest("GET", "/api/catalogue/brands", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != 1 || result[0]["nom"] != "Toyota" {
		t.Errorf("Unexpected brand list: %v", result)
	}
	if result[0]["vehicleCount"] != float64(0) {
		t.Errorf("Expected vehicleCount 0, got %v", result[0]["vehicleCount"])
	}
}

// TestCatalogueModelsUnknownBrand tests the 404 path
func TestCatalogueModelsUnknownBrand(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.CatalogHandler{DB: db}
	app.Get("/api/catalogue/brands/:brandId/models", handler.GetModelsByBrand)

	req := httptest.NewRequest("GET", "/api/catalogue/brands/00000000-0000-0000-0000-000000000000/models", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}
