// navigation.go
//
// Vehicle catalogue and back-office API for TSE Automobiles
// Copyright (c) 2026 TSE Automobiles SARL
//
// This file is part of tse-catalogue-server.
// tse-catalogue-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tse-catalogue-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tse-catalogue-server.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"fmt"
	"sort"

	"github.com/tse-auto/catalogue-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// BrandSummary is a brand with its computed vehicle count.
type BrandSummary struct {
	ID           string  `json:"id"`
	Nom          string  `json:"nom"`
	Logo         *string `json:"logo,omitempty"`
	Description  *string `json:"description,omitempty"`
	VehicleCount int     `json:"vehicleCount"`
}

// ModelSummary is a model with its computed vehicle count.
type ModelSummary struct {
	ID           string  `json:"id"`
	Nom          string  `json:"nom"`
	BrandID      string  `json:"brand_id"`
	Description  *string `json:"description,omitempty"`
	VehicleCount int     `json:"vehicleCount"`
}

// YearGroup is one year step of the drill-down, with the price range computed
// over vehicles that carry a price.
type YearGroup struct {
	Annee        int      `json:"annee"`
	VehicleCount int      `json:"vehicleCount"`
	PrixMin      *float64 `json:"prixMin,omitempty"`
	PrixMax      *float64 `json:"prixMax,omitempty"`
}

// VehicleFilters narrows GetVehiclesByCriteria. Zero values mean "no filter".
type VehicleFilters struct {
	BrandID      string
	ModelID      string
	Annee        int
	Couleur      string
	Carburant    string
	Transmission string
	PrixMin      *float64
	PrixMax      *float64
}

// GetBrands returns all brands with their vehicle counts, zero-count brands
// included.
func GetBrands(db *gorm.DB) ([]BrandSummary, error) {
	var brands []models.Brand
	if err := db.Preload("Vehicules").Order("nom").Find(&brands).Error; err != nil {
		return nil, err
	}

	summaries := make([]BrandSummary, 0, len(brands))
	for _, b := range brands {
		summaries = append(summaries, BrandSummary{
			ID:           b.ID,
			Nom:          b.Nom,
			Logo:         b.Logo,
			Description:  b.Description,
			VehicleCount: len(b.Vehicules),
		})
	}
	return summaries, nil
}

// GetModelsByBrand returns the models of one brand with their vehicle counts.
func GetModelsByBrand(db *gorm.DB, brandID string) ([]ModelSummary, error) {
	var brand models.Brand
	if err := db.First(&brand, "id = ?", brandID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}

	var modeles []models.VehicleModel
	if err := db.Preload("Vehicules").Where("brand_id = ?", brandID).Order("nom").Find(&modeles).Error; err != nil {
		return nil, err
	}

	summaries := make([]ModelSummary, 0, len(modeles))
	for _, m := range modeles {
		summaries = append(summaries, ModelSummary{
			ID:           m.ID,
			Nom:          m.Nom,
			BrandID:      m.BrandID,
			Description:  m.Description,
			VehicleCount: len(m.Vehicules),
		})
	}
	return summaries, nil
}

// GetYearsByModel returns the available years for one model, newest first,
// each with count and min/max price over vehicles carrying a price.
func GetYearsByModel(db *gorm.DB, modelID string) ([]YearGroup, error) {
	var modele models.VehicleModel
	if err := db.First(&modele, "id = ?", modelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}

	var vehicules []models.Vehicle
	if err := db.Where("model_id = ? AND statut = ?", modelID, models.StatutDisponible).
		Find(&vehicules).Error; err != nil {
		return nil, err
	}

	groups := make(map[int]*YearGroup)
	for _, v := range vehicules {
		g, ok := groups[v.Annee]
		if !ok {
			g = &YearGroup{Annee: v.Annee}
			groups[v.Annee] = g
		}
		g.VehicleCount++

		if v.Prix != nil {
			prix := *v.Prix
			if g.PrixMin == nil || prix < *g.PrixMin {
				g.PrixMin = &prix
			}
			if g.PrixMax == nil || prix > *g.PrixMax {
				g.PrixMax = &prix
			}
		}
	}

	result := make([]YearGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Annee > result[j].Annee })

	return result, nil
}

// GetVehiclesByCriteria returns available vehicles matching the filters,
// most recent first, with brand/model/images preloaded.
func GetVehiclesByCriteria(db *gorm.DB, filters VehicleFilters) ([]models.Vehicle, error) {
	query := db.Model(&models.Vehicle{}).Where("statut = ?", models.StatutDisponible)

	// The statut index hint only exists on the MySQL/MariaDB schema
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_vehicules_statut"))
	}

	if filters.BrandID != "" {
		query = query.Where("brand_id = ?", filters.BrandID)
	}
	if filters.ModelID != "" {
		query = query.Where("model_id = ?", filters.ModelID)
	}
	if filters.Annee != 0 {
		query = query.Where("annee = ?", filters.Annee)
	}
	if filters.Couleur != "" {
		query = query.Where("couleur = ?", filters.Couleur)
	}
	if filters.Carburant != "" {
		query = query.Where("carburant = ?", filters.Carburant)
	}
	if filters.Transmission != "" {
		query = query.Where("transmission = ?", filters.Transmission)
	}
	if filters.PrixMin != nil {
		query = query.Where("prix >= ?", *filters.PrixMin)
	}
	if filters.PrixMax != nil {
		query = query.Where("prix <= ?", *filters.PrixMax)
	}

	var vehicules []models.Vehicle
	err := query.
		Preload("Brand").
		Preload("Modele").
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order") }).
		Order("created_at DESC").
		Find(&vehicules).Error
	if err != nil {
		return nil, err
	}

	return vehicules, nil
}
