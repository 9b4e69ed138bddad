package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tse-auto/catalogue-server/internal/models"
)

// Result is the outcome of validating one entity input.
// Errors block submission, Warnings do not.
type Result struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// MinYear is the oldest accepted vehicle year.
const MinYear = 1900

// Plausibility ceilings for soft warnings.
const (
	MaxPlausiblePrix        = 100_000_000
	MaxPlausibleKilometrage = 500_000
)

var (
	puissanceRe    = regexp.MustCompile(`^\d+\s?ch$`)
	consommationRe = regexp.MustCompile(`(?i)^\d+([.,]\d+)?\s?L/100\s?km$`)
)

// standardCategories are the equipment categories the back office knows about.
var standardCategories = []string{"Confort", "Sécurité", "Multimédia", "Extérieur", "Intérieur"}

// VehicleInput is the decoded form/body for vehicle create and update.
type VehicleInput struct {
	BrandID      string
	ModelID      string
	Annee        int
	Couleur      string
	Prix         *float64
	Kilometrage  *int
	Carburant    string
	Transmission string
	Statut       string
	Description  string
	Puissance    *string
	Consommation *string
}

// BrandInput is the decoded form/body for brand create and update.
type BrandInput struct {
	Nom         string
	Logo        *string
	Description *string
}

// ModelInput is the decoded form/body for model create and update.
type ModelInput struct {
	Nom         string
	BrandID     string
	Description *string
}

// EquipmentInput is the decoded form/body for equipment create and update.
type EquipmentInput struct {
	Nom         string
	Categorie   *string
	Description *string
}

// BulkOperationInput is the decoded body for PUT /api/vehicules/bulk.
type BulkOperationInput struct {
	Operation    string
	VehicleIDs   []string
	Statut       string
	Prix         *float64
	EquipmentIDs []string
}

// Bulk operation names
const (
	BulkUpdateStatus    = "update_status"
	BulkUpdatePrice     = "update_price"
	BulkDelete          = "delete"
	BulkAssignEquipment = "assign_equipment"
)

// MaxYear returns the newest accepted vehicle year (currentYear+2).
func MaxYear() int {
	return time.Now().Year() + 2
}

// ValidateVehicle checks a vehicle input. With isUpdate, required-field checks
// are relaxed so partial updates can omit untouched fields.
func ValidateVehicle(in VehicleInput, isUpdate bool) Result {
	r := Result{}

	if !isUpdate {
		if in.BrandID == "" {
			r.addError("La marque est requise")
		}
		if in.ModelID == "" {
			r.addError("Le modèle est requis")
		}
		if in.Annee == 0 {
			r.addError("L'année est requise")
		}
		if strings.TrimSpace(in.Couleur) == "" {
			r.addError("La couleur est requise")
		}
		if in.Carburant == "" {
			r.addError("Le carburant est requis")
		}
		if in.Transmission == "" {
			r.addError("La transmission est requise")
		}
	}

	if in.BrandID != "" && !IsUUID(in.BrandID) {
		r.addError("L'identifiant de la marque est invalide")
	}
	if in.ModelID != "" && !IsUUID(in.ModelID) {
		r.addError("L'identifiant du modèle est invalide")
	}

	if in.Annee != 0 {
		maxYear := MaxYear()
		if in.Annee < MinYear || in.Annee > maxYear {
			r.addError(fmt.Sprintf("L'année doit être comprise entre %d et %d", MinYear, maxYear))
		} else if in.Annee > time.Now().Year() {
			r.addWarning("Le véhicule est daté dans le futur")
		}
	}

	if in.Prix != nil {
		switch {
		case *in.Prix < 0:
			r.addError("Le prix ne peut pas être négatif")
		case *in.Prix == 0:
			r.addWarning("Le prix est à zéro")
		case *in.Prix > MaxPlausiblePrix:
			r.addWarning("Le prix semble anormalement élevé")
		}
	}

	if in.Kilometrage != nil {
		if *in.Kilometrage < 0 {
			r.addError("Le kilométrage ne peut pas être négatif")
		} else if *in.Kilometrage > MaxPlausibleKilometrage {
			r.addWarning("Le kilométrage semble anormalement élevé")
		}
	}

	if in.Carburant != "" && !inList(in.Carburant, models.Carburants) {
		r.addError("Le carburant est invalide")
	}
	if in.Transmission != "" && !inList(in.Transmission, models.Transmissions) {
		r.addError("La transmission est invalide")
	}
	if in.Statut != "" && !inList(in.Statut, models.Statuts) {
		r.addError("Le statut est invalide")
	}

	if len(in.Couleur) > 50 {
		r.addError("La couleur ne doit pas dépasser 50 caractères")
	}
	if len(in.Description) > 5000 {
		r.addError("La description ne doit pas dépasser 5000 caractères")
	}

	if in.Puissance != nil && *in.Puissance != "" && !puissanceRe.MatchString(*in.Puissance) {
		r.addWarning("Format de puissance non standard (attendu: \"150 ch\")")
	}
	if in.Consommation != nil && *in.Consommation != "" && !consommationRe.MatchString(*in.Consommation) {
		r.addWarning("Format de consommation non standard (attendu: \"6.5L/100km\")")
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

// ValidateBrand checks a brand input.
func ValidateBrand(in BrandInput, isUpdate bool) Result {
	r := Result{}

	if !isUpdate && strings.TrimSpace(in.Nom) == "" {
		r.addError("Le nom de la marque est requis")
	}
	if len(in.Nom) > 100 {
		r.addError("Le nom ne doit pas dépasser 100 caractères")
	}
	if in.Logo != nil && *in.Logo != "" && !IsURL(*in.Logo) {
		r.addError("L'URL du logo est invalide")
	}
	if in.Description != nil && len(*in.Description) > 1000 {
		r.addError("La description ne doit pas dépasser 1000 caractères")
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

// ValidateModel checks a model input.
func ValidateModel(in ModelInput, isUpdate bool) Result {
	r := Result{}

	if !isUpdate {
		if strings.TrimSpace(in.Nom) == "" {
			r.addError("Le nom du modèle est requis")
		}
		if in.BrandID == "" {
			r.addError("La marque est requise")
		}
	}
	if in.BrandID != "" && !IsUUID(in.BrandID) {
		r.addError("L'identifiant de la marque est invalide")
	}
	if len(in.Nom) > 100 {
		r.addError("Le nom ne doit pas dépasser 100 caractères")
	}
	if in.Description != nil && len(*in.Description) > 1000 {
		r.addError("La description ne doit pas dépasser 1000 caractères")
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

// ValidateEquipment checks an equipment input.
func ValidateEquipment(in EquipmentInput, isUpdate bool) Result {
	r := Result{}

	if !isUpdate && strings.TrimSpace(in.Nom) == "" {
		r.addError("Le nom de l'équipement est requis")
	}
	if len(in.Nom) > 100 {
		r.addError("Le nom ne doit pas dépasser 100 caractères")
	}
	if in.Categorie != nil && *in.Categorie != "" && !inList(*in.Categorie, standardCategories) {
		r.addWarning(fmt.Sprintf("Catégorie non standard: %s", *in.Categorie))
	}
	if in.Description != nil && len(*in.Description) > 1000 {
		r.addError("La description ne doit pas dépasser 1000 caractères")
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

// ValidateBulkOperation checks a bulk operation request.
func ValidateBulkOperation(in BulkOperationInput) Result {
	r := Result{}

	switch in.Operation {
	case BulkUpdateStatus:
		if !inList(in.Statut, models.Statuts) {
			r.addError("Le statut est invalide")
		}
	case BulkUpdatePrice:
		if in.Prix == nil {
			r.addError("Le prix est requis")
		} else if *in.Prix < 0 {
			r.addError("Le prix ne peut pas être négatif")
		}
	case BulkDelete:
	case BulkAssignEquipment:
		if len(in.EquipmentIDs) == 0 {
			r.addError("Au moins un équipement est requis")
		}
		for _, id := range in.EquipmentIDs {
			if !IsUUID(id) {
				r.addError(fmt.Sprintf("Identifiant d'équipement invalide: %s", id))
			}
		}
	default:
		r.addError(fmt.Sprintf("Opération inconnue: %s", in.Operation))
	}

	if len(in.VehicleIDs) == 0 {
		r.addError("Au moins un véhicule est requis")
	}
	for _, id := range in.VehicleIDs {
		if !IsUUID(id) {
			r.addError(fmt.Sprintf("Identifiant de véhicule invalide: %s", id))
		}
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (r *Result) addError(msg string)   { r.Errors = append(r.Errors, msg) }
func (r *Result) addWarning(msg string) { r.Warnings = append(r.Warnings, msg) }

func inList(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
