package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/utils"
	"github.com/tse-auto/catalogue-server/internal/validation"
	"gorm.io/gorm"
)

// EquipmentHandler serves the back-office equipment CRUD
type EquipmentHandler struct {
	DB *gorm.DB
}

type equipmentBody struct {
	Nom         string  `json:"nom"`
	Categorie   *string `json:"categorie"`
	Description *string `json:"description"`
}

// List handles GET /api/equipements
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Equipment{}).Order("nom")
	if categorie := c.Query("categorie"); categorie != "" {
		query = query.Where("categorie = ?", categorie)
	}

	var equipments []models.Equipment
	if err := query.Find(&equipments).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listEquipments")
	}
	return c.Status(fiber.StatusOK).JSON(equipments)
}

// Get handles GET /api/equipements/:id
func (h *EquipmentHandler) Get(c *fiber.Ctx) error {
	var equipment models.Equipment
	if err := h.DB.First(&equipment, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Équipement introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getEquipment")
	}
	return c.Status(fiber.StatusOK).JSON(equipment)
}

// Create handles POST /api/equipements
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var body equipmentBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "createEquipment")
	}

	result := validation.ValidateEquipment(validation.EquipmentInput{
		Nom:         body.Nom,
		Categorie:   body.Categorie,
		Description: body.Description,
	}, false)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	equipment := models.Equipment{
		Nom:         strings.TrimSpace(body.Nom),
		Categorie:   body.Categorie,
		Description: body.Description,
	}
	if err := h.DB.Create(&equipment).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createEquipment")
	}

	return c.Status(fiber.StatusCreated).JSON(equipment)
}

// Update handles PUT /api/equipements/:id
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var equipment models.Equipment
	if err := h.DB.First(&equipment, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Équipement introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateEquipment")
	}

	var body equipmentBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "updateEquipment")
	}

	result := validation.ValidateEquipment(validation.EquipmentInput{
		Nom:         body.Nom,
		Categorie:   body.Categorie,
		Description: body.Description,
	}, true)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	if body.Nom != "" {
		equipment.Nom = strings.TrimSpace(body.Nom)
	}
	if body.Categorie != nil {
		equipment.Categorie = body.Categorie
	}
	if body.Description != nil {
		equipment.Description = body.Description
	}

	if err := h.DB.Save(&equipment).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateEquipment")
	}
	return c.Status(fiber.StatusOK).JSON(equipment)
}

// Delete handles DELETE /api/equipements/:id. The join rows are cleared so no
// vehicle keeps a dangling reference.
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	var equipment models.Equipment
	if err := h.DB.First(&equipment, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Équipement introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteEquipment")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM vehicule_equipements WHERE equipment_id = ?", equipment.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&equipment).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteEquipment")
	}

	return utils.MutationSuccessResponse(c, 1)
}
