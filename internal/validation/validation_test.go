package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tse-auto/catalogue-server/internal/models"
)

func validVehicleInput() VehicleInput {
	return VehicleInput{
		BrandID:      uuid.NewString(),
		ModelID:      uuid.NewString(),
		Annee:        2022,
		Couleur:      "Rouge",
		Carburant:    models.CarburantEssence,
		Transmission: models.TransmissionManuelle,
	}
}

func TestValidateVehicleOK(t *testing.T) {
	r := ValidateVehicle(validVehicleInput(), false)
	assert.True(t, r.IsValid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidateVehicleRequiredFields(t *testing.T) {
	r := ValidateVehicle(VehicleInput{}, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "La marque est requise")
	assert.Contains(t, r.Errors, "Le modèle est requis")
	assert.Contains(t, r.Errors, "L'année est requise")
	assert.Contains(t, r.Errors, "La couleur est requise")
	assert.Contains(t, r.Errors, "Le carburant est requis")
	assert.Contains(t, r.Errors, "La transmission est requise")

	// Updates may omit everything
	r = ValidateVehicle(VehicleInput{}, true)
	assert.True(t, r.IsValid)
}

func TestValidateVehicleYearBounds(t *testing.T) {
	maxYear := MaxYear()
	wantMsg := fmt.Sprintf("L'année doit être comprise entre %d et %d", MinYear, maxYear)

	in := validVehicleInput()
	in.Annee = 1899
	r := ValidateVehicle(in, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, wantMsg)

	in.Annee = maxYear + 1
	r = ValidateVehicle(in, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, wantMsg)

	// Boundary years pass
	in.Annee = MinYear
	assert.True(t, ValidateVehicle(in, false).IsValid)
	in.Annee = maxYear
	assert.True(t, ValidateVehicle(in, false).IsValid)

	// A future-but-allowed year only warns
	in.Annee = time.Now().Year() + 1
	r = ValidateVehicle(in, false)
	assert.True(t, r.IsValid)
	assert.Contains(t, r.Warnings, "Le véhicule est daté dans le futur")
}

func TestValidateVehiclePrice(t *testing.T) {
	in := validVehicleInput()

	negative := -1.0
	in.Prix = &negative
	r := ValidateVehicle(in, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Le prix ne peut pas être négatif")

	zero := 0.0
	in.Prix = &zero
	r = ValidateVehicle(in, false)
	assert.True(t, r.IsValid)
	assert.Contains(t, r.Warnings, "Le prix est à zéro")

	excessive := float64(MaxPlausiblePrix + 1)
	in.Prix = &excessive
	r = ValidateVehicle(in, false)
	assert.True(t, r.IsValid)
	assert.Contains(t, r.Warnings, "Le prix semble anormalement élevé")
}

func TestValidateVehicleEnums(t *testing.T) {
	in := validVehicleInput()
	in.Carburant = "Charbon"
	in.Transmission = "Triptronic"
	in.Statut = "Perdu"

	r := ValidateVehicle(in, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Le carburant est invalide")
	assert.Contains(t, r.Errors, "La transmission est invalide")
	assert.Contains(t, r.Errors, "Le statut est invalide")
}

func TestValidateVehicleSpecFormats(t *testing.T) {
	in := validVehicleInput()

	good := "150 ch"
	in.Puissance = &good
	r := ValidateVehicle(in, false)
	assert.True(t, r.IsValid)
	assert.Empty(t, r.Warnings)

	bad := "150 horsepower"
	in.Puissance = &bad
	r = ValidateVehicle(in, false)
	assert.True(t, r.IsValid)
	assert.Contains(t, r.Warnings, `Format de puissance non standard (attendu: "150 ch")`)

	in = validVehicleInput()
	conso := "6,5 L/100 km"
	in.Consommation = &conso
	r = ValidateVehicle(in, false)
	assert.Empty(t, r.Warnings)

	badConso := "beaucoup"
	in.Consommation = &badConso
	r = ValidateVehicle(in, false)
	assert.Contains(t, r.Warnings, `Format de consommation non standard (attendu: "6.5L/100km")`)
}

func TestValidateBrand(t *testing.T) {
	r := ValidateBrand(BrandInput{Nom: "Toyota"}, false)
	assert.True(t, r.IsValid)

	r = ValidateBrand(BrandInput{Nom: "   "}, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Le nom de la marque est requis")

	badLogo := "not a url"
	r = ValidateBrand(BrandInput{Nom: "Toyota", Logo: &badLogo}, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "L'URL du logo est invalide")

	ftpLogo := "ftp://example.com/logo.png"
	r = ValidateBrand(BrandInput{Nom: "Toyota", Logo: &ftpLogo}, false)
	assert.False(t, r.IsValid)

	goodLogo := "https://example.com/logo.png"
	r = ValidateBrand(BrandInput{Nom: "Toyota", Logo: &goodLogo}, false)
	assert.True(t, r.IsValid)
}

func TestValidateModel(t *testing.T) {
	r := ValidateModel(ModelInput{Nom: "Corolla", BrandID: uuid.NewString()}, false)
	assert.True(t, r.IsValid)

	r = ValidateModel(ModelInput{Nom: "Corolla", BrandID: "pas-un-uuid"}, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "L'identifiant de la marque est invalide")

	r = ValidateModel(ModelInput{}, false)
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Le nom du modèle est requis")
	assert.Contains(t, r.Errors, "La marque est requise")
}

func TestValidateEquipment(t *testing.T) {
	r := ValidateEquipment(EquipmentInput{Nom: "GPS"}, false)
	assert.True(t, r.IsValid)

	exotic := "Tuning"
	r = ValidateEquipment(EquipmentInput{Nom: "GPS", Categorie: &exotic}, false)
	assert.True(t, r.IsValid)
	assert.Contains(t, r.Warnings, "Catégorie non standard: Tuning")

	standard := "Confort"
	r = ValidateEquipment(EquipmentInput{Nom: "GPS", Categorie: &standard}, false)
	assert.Empty(t, r.Warnings)
}

func TestValidateBulkOperation(t *testing.T) {
	ids := []string{uuid.NewString(), uuid.NewString()}

	r := ValidateBulkOperation(BulkOperationInput{
		Operation:  BulkUpdateStatus,
		VehicleIDs: ids,
		Statut:     models.StatutVendu,
	})
	assert.True(t, r.IsValid)

	r = ValidateBulkOperation(BulkOperationInput{
		Operation:  BulkUpdateStatus,
		VehicleIDs: ids,
		Statut:     "Cassé",
	})
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Le statut est invalide")

	r = ValidateBulkOperation(BulkOperationInput{
		Operation:  BulkUpdatePrice,
		VehicleIDs: ids,
	})
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Le prix est requis")

	r = ValidateBulkOperation(BulkOperationInput{
		Operation:  BulkDelete,
		VehicleIDs: nil,
	})
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Au moins un véhicule est requis")

	r = ValidateBulkOperation(BulkOperationInput{
		Operation:  "explode",
		VehicleIDs: ids,
	})
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Opération inconnue: explode")

	r = ValidateBulkOperation(BulkOperationInput{
		Operation:    BulkAssignEquipment,
		VehicleIDs:   []string{"pas-un-uuid"},
		EquipmentIDs: []string{uuid.NewString()},
	})
	assert.False(t, r.IsValid)
	assert.Contains(t, r.Errors, "Identifiant de véhicule invalide: pas-un-uuid")
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.True(t, IsURL("http://example.com"))
	assert.False(t, IsURL("example.com"))
	assert.False(t, IsURL("ftp://example.com"))
	assert.False(t, IsURL(""))
}
