package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tse-auto/catalogue-server/internal/models"
	"gorm.io/gorm"
)

// ExportVehiclesCSV writes the full vehicle list as CSV.
func ExportVehiclesCSV(db *gorm.DB, w io.Writer) error {
	var vehicules []models.Vehicle
	if err := db.Preload("Brand").Preload("Modele").Order("created_at DESC").Find(&vehicules).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "marque", "modele", "annee", "couleur", "prix", "kilometrage",
		"carburant", "transmission", "statut", "description",
	}); err != nil {
		return err
	}

	for _, v := range vehicules {
		marque, modele := "", ""
		if v.Brand != nil {
			marque = v.Brand.Nom
		}
		if v.Modele != nil {
			modele = v.Modele.Nom
		}
		prix := ""
		if v.Prix != nil {
			prix = strconv.FormatFloat(*v.Prix, 'f', -1, 64)
		}
		kilometrage := ""
		if v.Kilometrage != nil {
			kilometrage = strconv.Itoa(*v.Kilometrage)
		}
		record := []string{
			v.ID, marque, modele, strconv.Itoa(v.Annee), v.Couleur, prix, kilometrage,
			v.Carburant, v.Transmission, v.Statut, v.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportBrandsCSV writes brands with their models as CSV.
func ExportBrandsCSV(db *gorm.DB, w io.Writer) error {
	var brands []models.Brand
	if err := db.Preload("Modeles").Order("nom").Find(&brands).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"marque_id", "marque", "modele_id", "modele"}); err != nil {
		return err
	}

	for _, b := range brands {
		if len(b.Modeles) == 0 {
			if err := cw.Write([]string{b.ID, b.Nom, "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, m := range b.Modeles {
			if err := cw.Write([]string{b.ID, b.Nom, m.ID, m.Nom}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportStatsByBrandCSV writes per-brand vehicle counts and valuation as CSV.
func ExportStatsByBrandCSV(db *gorm.DB, w io.Writer) error {
	var brands []models.Brand
	if err := db.Preload("Vehicules").Order("nom").Find(&brands).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"marque", "vehicules", "disponibles", "valeur_stock"}); err != nil {
		return err
	}

	for _, b := range brands {
		var disponibles int
		var valeur float64
		for _, v := range b.Vehicules {
			if v.Statut == models.StatutDisponible {
				disponibles++
				if v.Prix != nil {
					valeur += *v.Prix
				}
			}
		}
		record := []string{
			b.Nom,
			strconv.Itoa(len(b.Vehicules)),
			strconv.Itoa(disponibles),
			fmt.Sprintf("%.0f", valeur),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
