package services

import (
	"fmt"

	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/validation"
	"gorm.io/gorm"
)

// DashboardStats aggregates the back-office landing page numbers.
// Computed by in-memory reduction over one full fetch.
type DashboardStats struct {
	TotalVehicules  int              `json:"totalVehicules"`
	ParStatut       map[string]int   `json:"parStatut"`
	ValeurStock     float64          `json:"valeurStock"`
	PrixMoyen       float64          `json:"prixMoyen"`
	TotalMarques    int64            `json:"totalMarques"`
	TotalModeles    int64            `json:"totalModeles"`
	ActiviteRecente []models.Vehicle `json:"activiteRecente"`
}

// GetDashboardStats computes counts by status, stock valuation (available
// vehicles with a price) and the recent activity list.
func GetDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	var vehicules []models.Vehicle
	if err := db.Preload("Brand").Preload("Modele").Find(&vehicules).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalVehicules: len(vehicules),
		ParStatut:      make(map[string]int),
	}
	for _, s := range models.Statuts {
		stats.ParStatut[s] = 0
	}

	var pricedCount int
	for _, v := range vehicules {
		stats.ParStatut[v.Statut]++
		if v.Prix != nil {
			if v.Statut == models.StatutDisponible {
				stats.ValeurStock += *v.Prix
			}
			stats.PrixMoyen += *v.Prix
			pricedCount++
		}
	}
	if pricedCount > 0 {
		stats.PrixMoyen /= float64(pricedCount)
	}

	if err := db.Model(&models.Brand{}).Count(&stats.TotalMarques).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.VehicleModel{}).Count(&stats.TotalModeles).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Brand").Preload("Modele").
		Order("updated_at DESC").
		Limit(5).
		Find(&stats.ActiviteRecente).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ExecuteBulkOperation runs one bulk operation over a list of vehicle ids in a
// single transaction. All-or-nothing per operation, not per row.
func ExecuteBulkOperation(db *gorm.DB, in validation.BulkOperationInput) (int64, error) {
	var affected int64

	err := db.Transaction(func(tx *gorm.DB) error {
		switch in.Operation {
		case validation.BulkUpdateStatus:
			res := tx.Model(&models.Vehicle{}).
				Where("id IN ?", in.VehicleIDs).
				Update("statut", in.Statut)
			if res.Error != nil {
				return res.Error
			}
			affected = res.RowsAffected

		case validation.BulkUpdatePrice:
			if in.Prix == nil {
				return fmt.Errorf("le prix est requis")
			}
			res := tx.Model(&models.Vehicle{}).
				Where("id IN ?", in.VehicleIDs).
				Update("prix", *in.Prix)
			if res.Error != nil {
				return res.Error
			}
			affected = res.RowsAffected

		case validation.BulkDelete:
			if err := tx.Where("vehicle_id IN ?", in.VehicleIDs).Delete(&models.VehicleImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("vehicle_id IN ?", in.VehicleIDs).Delete(&models.VehicleDocument{}).Error; err != nil {
				return err
			}
			res := tx.Where("id IN ?", in.VehicleIDs).Delete(&models.Vehicle{})
			if res.Error != nil {
				return res.Error
			}
			affected = res.RowsAffected

		case validation.BulkAssignEquipment:
			var equipments []models.Equipment
			if err := tx.Where("id IN ?", in.EquipmentIDs).Find(&equipments).Error; err != nil {
				return err
			}
			if len(equipments) != len(in.EquipmentIDs) {
				return fmt.Errorf("not found")
			}
			for _, id := range in.VehicleIDs {
				vehicle := models.Vehicle{ID: id}
				if err := tx.Model(&vehicle).Association("Equipments").Append(&equipments); err != nil {
					return err
				}
				affected++
			}

		default:
			return fmt.Errorf("opération inconnue: %s", in.Operation)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}
