// vehicles.go
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

package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/types"
	"github.com/tse-auto/catalogue-server/internal/utils"
	"github.com/tse-auto/catalogue-server/internal/validation"
	"gorm.io/gorm"
)

// VehicleHandler serves the back-office vehicle CRUD and bulk operations
type VehicleHandler struct {
	DB *gorm.DB
}

// vehicleBody is the create/update payload. Numeric fields go through Flex
// types because the admin forms submit them as strings.
type vehicleBody struct {
	BrandID      string                 `json:"brand_id"`
	ModelID      string                 `json:"model_id"`
	Annee        types.FlexUint64       `json:"annee"`
	Couleur      string                 `json:"couleur"`
	Prix         *types.FlexFloat64     `json:"prix"`
	Kilometrage  *types.FlexInt64       `json:"kilometrage"`
	Carburant    string                 `json:"carburant"`
	Transmission string                 `json:"transmission"`
	Statut       string                 `json:"statut"`
	Description  string                 `json:"description"`
	Puissance    *string                `json:"puissance"`
	Cylindree    *string                `json:"cylindree"`
	Consommation *string                `json:"consommation"`
	Emissions    *string                `json:"emissions"`
	NbPortes     *types.FlexUint64      `json:"nb_portes"`
	NbPlaces     *types.FlexUint64      `json:"nb_places"`
	CoffreLitres *types.FlexUint64      `json:"coffre_litres"`
	EquipmentIDs types.FlexList[string] `json:"equipement_ids"`
}

// bulkBody is the payload for PUT /api/vehicules/bulk. Id fields accept a
// single id or a list.
type bulkBody struct {
	Operation    string                 `json:"operation"`
	VehiculeIDs  types.FlexList[string] `json:"vehicule_ids"`
	Statut       string                 `json:"statut"`
	Prix         *types.FlexFloat64     `json:"prix"`
	EquipmentIDs types.FlexList[string] `json:"equipement_ids"`
}

func (b *vehicleBody) validationInput() validation.VehicleInput {
	in := validation.VehicleInput{
		BrandID:      b.BrandID,
		ModelID:      b.ModelID,
		Annee:        b.Annee.Int(),
		Couleur:      b.Couleur,
		Carburant:    b.Carburant,
		Transmission: b.Transmission,
		Statut:       b.Statut,
		Description:  b.Description,
		Puissance:    b.Puissance,
		Consommation: b.Consommation,
	}
	if b.Prix != nil {
		prix := b.Prix.Float64()
		in.Prix = &prix
	}
	if b.Kilometrage != nil {
		km := b.Kilometrage.Int()
		in.Kilometrage = &km
	}
	return in
}

func flexIntPtr(f *types.FlexUint64) *int {
	if f == nil {
		return nil
	}
	v := f.Int()
	return &v
}

func flexInt64Ptr(f *types.FlexInt64) *int {
	if f == nil {
		return nil
	}
	v := f.Int()
	return &v
}

// List handles GET /api/vehicules
// @Summary List vehicles for the back office with filters and pagination
// @Tags Vehicles
// @Produce json
// @Param marque query string false "Brand ID"
// @Param carburant query string false "Fuel type"
// @Param transmission query string false "Transmission"
// @Param statut query string false "Status"
// @Param recherche query string false "Search in color and description"
// @Param anneeMin query int false "Minimum year"
// @Param anneeMax query int false "Maximum year"
// @Param prixMin query number false "Minimum price"
// @Param prixMax query number false "Maximum price"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /vehicules [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	query := h.DB.Model(&models.Vehicle{})
	if marque := c.Query("marque"); marque != "" {
		query = query.Where("brand_id = ?", marque)
	}
	if carburant := c.Query("carburant"); carburant != "" {
		query = query.Where("carburant = ?", carburant)
	}
	if transmission := c.Query("transmission"); transmission != "" {
		query = query.Where("transmission = ?", transmission)
	}
	if statut := c.Query("statut"); statut != "" {
		query = query.Where("statut = ?", statut)
	}
	if recherche := c.Query("recherche"); recherche != "" {
		needle := "%" + strings.ToLower(recherche) + "%"
		query = query.Where("LOWER(couleur) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	if anneeMin := c.QueryInt("anneeMin", 0); anneeMin > 0 {
		query = query.Where("annee >= ?", anneeMin)
	}
	if anneeMax := c.QueryInt("anneeMax", 0); anneeMax > 0 {
		query = query.Where("annee <= ?", anneeMax)
	}
	if prixMin := queryFloat(c, "prixMin"); prixMin != nil {
		query = query.Where("prix >= ?", *prixMin)
	}
	if prixMax := queryFloat(c, "prixMax"); prixMax != nil {
		query = query.Where("prix <= ?", *prixMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listVehicles")
	}

	var vehicules []models.Vehicle
	err := query.Preload("Brand").Preload("Modele").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vehicules).Error
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listVehicles")
	}

	return c.Status(fiber.StatusOK).JSON(listEnvelope(vehicules, total, page, limit))
}

// Get handles GET /api/vehicules/:id
// @Summary Fetch one vehicle with all its associations
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} models.Vehicle
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /vehicules/{id} [get]
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	var vehicule models.Vehicle
	err := h.DB.Preload("Brand").Preload("Modele").Preload("Equipments").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("Documents").
		First(&vehicule, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Véhicule introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getVehicle")
	}
	return c.Status(fiber.StatusOK).JSON(vehicule)
}

// Create handles POST /api/vehicules
// @Summary Create a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicle body vehicleBody true "Vehicle payload"
// @Success 201 {object} models.Vehicle
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /vehicules [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var body vehicleBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "createVehicle")
	}

	result := validation.ValidateVehicle(body.validationInput(), false)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", body.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Marque introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createVehicle")
	}
	var modele models.VehicleModel
	if err := h.DB.First(&modele, "id = ? AND brand_id = ?", body.ModelID, body.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Modèle introuvable pour cette marque")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createVehicle")
	}

	statut := body.Statut
	if statut == "" {
		statut = models.StatutDisponible
	}

	vehicule := models.Vehicle{
		BrandID:      body.BrandID,
		ModelID:      body.ModelID,
		Annee:        body.Annee.Int(),
		Couleur:      strings.TrimSpace(body.Couleur),
		Kilometrage:  flexInt64Ptr(body.Kilometrage),
		Carburant:    body.Carburant,
		Transmission: body.Transmission,
		Statut:       statut,
		Description:  body.Description,
		Puissance:    body.Puissance,
		Cylindree:    body.Cylindree,
		Consommation: body.Consommation,
		Emissions:    body.Emissions,
		NbPortes:     flexIntPtr(body.NbPortes),
		NbPlaces:     flexIntPtr(body.NbPlaces),
		CoffreLitres: flexIntPtr(body.CoffreLitres),
	}
	if body.Prix != nil {
		prix := body.Prix.Float64()
		vehicule.Prix = &prix
	}

	if err := h.DB.Create(&vehicule).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createVehicle")
	}

	if len(body.EquipmentIDs) > 0 {
		if err := h.assignEquipments(&vehicule, body.EquipmentIDs.Slice()); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createVehicle")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(vehicule)
}

// Update handles PUT /api/vehicules/:id. Partial update: zero-valued fields of
// the body leave the stored value untouched.
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var vehicule models.Vehicle
	if err := h.DB.First(&vehicule, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Véhicule introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateVehicle")
	}

	var body vehicleBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "updateVehicle")
	}

	result := validation.ValidateVehicle(body.validationInput(), true)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	if body.BrandID != "" {
		vehicule.BrandID = body.BrandID
	}
	if body.ModelID != "" {
		var modele models.VehicleModel
		if err := h.DB.First(&modele, "id = ? AND brand_id = ?", body.ModelID, vehicule.BrandID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundResponse(c, "Modèle introuvable pour cette marque")
			}
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateVehicle")
		}
		vehicule.ModelID = body.ModelID
	}
	if body.Annee != 0 {
		vehicule.Annee = body.Annee.Int()
	}
	if body.Couleur != "" {
		vehicule.Couleur = strings.TrimSpace(body.Couleur)
	}
	if body.Prix != nil {
		prix := body.Prix.Float64()
		vehicule.Prix = &prix
	}
	if body.Kilometrage != nil {
		vehicule.Kilometrage = flexInt64Ptr(body.Kilometrage)
	}
	if body.Carburant != "" {
		vehicule.Carburant = body.Carburant
	}
	if body.Transmission != "" {
		vehicule.Transmission = body.Transmission
	}
	if body.Statut != "" {
		vehicule.Statut = body.Statut
	}
	if body.Description != "" {
		vehicule.Description = body.Description
	}
	if body.Puissance != nil {
		vehicule.Puissance = body.Puissance
	}
	if body.Cylindree != nil {
		vehicule.Cylindree = body.Cylindree
	}
	if body.Consommation != nil {
		vehicule.Consommation = body.Consommation
	}
	if body.Emissions != nil {
		vehicule.Emissions = body.Emissions
	}
	if body.NbPortes != nil {
		vehicule.NbPortes = flexIntPtr(body.NbPortes)
	}
	if body.NbPlaces != nil {
		vehicule.NbPlaces = flexIntPtr(body.NbPlaces)
	}
	if body.CoffreLitres != nil {
		vehicule.CoffreLitres = flexIntPtr(body.CoffreLitres)
	}

	if err := h.DB.Save(&vehicule).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateVehicle")
	}

	if body.EquipmentIDs != nil {
		if err := h.replaceEquipments(&vehicule, body.EquipmentIDs.Slice()); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateVehicle")
		}
	}

	return c.Status(fiber.StatusOK).JSON(vehicule)
}

// Delete handles DELETE /api/vehicules/:id
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	var vehicule models.Vehicle
	if err := h.DB.First(&vehicule, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Véhicule introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteVehicle")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", vehicule.ID).Delete(&models.VehicleImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", vehicule.ID).Delete(&models.VehicleDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&vehicule).Association("Equipments").Clear(); err != nil {
			return err
		}
		return tx.Delete(&vehicule).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteVehicle")
	}

	return utils.MutationSuccessResponse(c, 1)
}

// Bulk handles PUT /api/vehicules/bulk
// @Summary Run one operation over many vehicles at once
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param operation body bulkBody true "Bulk operation payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /vehicules/bulk [put]
func (h *VehicleHandler) Bulk(c *fiber.Ctx) error {
	var body bulkBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "bulkVehicles")
	}

	in := validation.BulkOperationInput{
		Operation:    body.Operation,
		VehicleIDs:   body.VehiculeIDs.Slice(),
		Statut:       body.Statut,
		EquipmentIDs: body.EquipmentIDs.Slice(),
	}
	if body.Prix != nil {
		prix := body.Prix.Float64()
		in.Prix = &prix
	}

	result := validation.ValidateBulkOperation(in)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	affected, err := services.ExecuteBulkOperation(h.DB, in)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Équipement introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "bulkVehicles")
	}

	return utils.MutationSuccessResponse(c, affected)
}

func (h *VehicleHandler) assignEquipments(vehicule *models.Vehicle, ids []string) error {
	var equipments []models.Equipment
	if err := h.DB.Where("id IN ?", ids).Find(&equipments).Error; err != nil {
		return err
	}
	return h.DB.Model(vehicule).Association("Equipments").Append(&equipments)
}

func (h *VehicleHandler) replaceEquipments(vehicule *models.Vehicle, ids []string) error {
	var equipments []models.Equipment
	if len(ids) > 0 {
		if err := h.DB.Where("id IN ?", ids).Find(&equipments).Error; err != nil {
			return err
		}
	}
	return h.DB.Model(vehicule).Association("Equipments").Replace(&equipments)
}
