package services

import (
	"fmt"
	"log"

	"github.com/gosimple/slug"
	"github.com/tse-auto/catalogue-server/internal/models"
	"gorm.io/gorm"
)

// VehicleSlug computes the public slug of a vehicle from brand, model and year
// (e.g. "toyota-corolla-2023"). Brand and Modele must be loaded.
func VehicleSlug(v *models.Vehicle) string {
	marque, modele := "", ""
	if v.Brand != nil {
		marque = v.Brand.Nom
	}
	if v.Modele != nil {
		modele = v.Modele.Nom
	}
	return slug.Make(fmt.Sprintf("%s %s %d", marque, modele, v.Annee))
}

// GetVehicleBySlug resolves a public slug to an available vehicle by
// recomputing each vehicle's slug and scanning for a match. Linear over the
// whole catalogue; a persisted slug column is the upgrade path once the
// catalogue outgrows this.
func GetVehicleBySlug(db *gorm.DB, wanted string, defaults SpecDefaults) (*models.Vehicle, error) {
	var vehicules []models.Vehicle
	err := db.Where("statut = ?", models.StatutDisponible).
		Preload("Brand").
		Preload("Modele").
		Preload("Equipments").
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order") }).
		Preload("Documents").
		Find(&vehicules).Error
	if err != nil {
		return nil, err
	}

	for i := range vehicules {
		if VehicleSlug(&vehicules[i]) == wanted {
			v := vehicules[i]
			if applied := ApplyDefaults(&v, defaults); applied {
				log.Printf("Placeholder specs applied for vehicle %s (%s)", v.ID, wanted)
			}
			return &v, nil
		}
	}

	return nil, fmt.Errorf("not found")
}
