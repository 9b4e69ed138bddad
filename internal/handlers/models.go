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

// ModelHandler serves the back-office model CRUD
type ModelHandler struct {
	DB *gorm.DB
}

type modelBody struct {
	Nom         string  `json:"nom"`
	BrandID     string  `json:"brand_id"`
	Description *string `json:"description"`
}

// List handles GET /api/modeles
// @Summary List models for the back office
// @Tags Models
// @Produce json
// @Param brand_id query string false "Filter by brand"
// @Param include_brand query bool false "Preload the owning brand"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /modeles [get]
func (h *ModelHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	query := h.DB.Model(&models.VehicleModel{}).Order("nom")
	if brandID := c.Query("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listModels")
	}

	if c.QueryBool("include_brand", false) {
		query = query.Preload("Brand")
	}

	var modeles []models.VehicleModel
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&modeles).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listModels")
	}

	return c.Status(fiber.StatusOK).JSON(listEnvelope(modeles, total, page, limit))
}

// Get handles GET /api/modeles/:id
func (h *ModelHandler) Get(c *fiber.Ctx) error {
	var modele models.VehicleModel
	err := h.DB.Preload("Brand").First(&modele, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Modèle introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getModel")
	}
	return c.Status(fiber.StatusOK).JSON(modele)
}

// Create handles POST /api/modeles
// @Summary Create a model under a brand
// @Tags Models
// @Accept json
// @Produce json
// @Param model body modelBody true "Model payload"
// @Success 201 {object} models.VehicleModel
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /modeles [post]
func (h *ModelHandler) Create(c *fiber.Ctx) error {
	var body modelBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "createModel")
	}

	result := validation.ValidateModel(validation.ModelInput{
		Nom:         body.Nom,
		BrandID:     body.BrandID,
		Description: body.Description,
	}, false)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", body.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Marque introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createModel")
	}

	// Model names are unique per brand, not globally
	var count int64
	h.DB.Model(&models.VehicleModel{}).
		Where("brand_id = ? AND LOWER(nom) = ?", body.BrandID, strings.ToLower(body.Nom)).
		Count(&count)
	if count > 0 {
		return utils.ConflictResponse(c, "Un modèle portant ce nom existe déjà pour cette marque")
	}

	modele := models.VehicleModel{
		Nom:         strings.TrimSpace(body.Nom),
		BrandID:     body.BrandID,
		Description: body.Description,
	}
	if err := h.DB.Create(&modele).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createModel")
	}

	return c.Status(fiber.StatusCreated).JSON(modele)
}

// Update handles PUT /api/modeles/:id
func (h *ModelHandler) Update(c *fiber.Ctx) error {
	var modele models.VehicleModel
	if err := h.DB.First(&modele, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Modèle introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateModel")
	}

	var body modelBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "updateModel")
	}

	result := validation.ValidateModel(validation.ModelInput{
		Nom:         body.Nom,
		BrandID:     body.BrandID,
		Description: body.Description,
	}, true)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	if body.BrandID != "" && body.BrandID != modele.BrandID {
		var brand models.Brand
		if err := h.DB.First(&brand, "id = ?", body.BrandID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundResponse(c, "Marque introuvable")
			}
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateModel")
		}
		modele.BrandID = body.BrandID
	}

	if body.Nom != "" {
		var count int64
		h.DB.Model(&models.VehicleModel{}).
			Where("brand_id = ? AND LOWER(nom) = ? AND id <> ?", modele.BrandID, strings.ToLower(body.Nom), modele.ID).
			Count(&count)
		if count > 0 {
			return utils.ConflictResponse(c, "Un modèle portant ce nom existe déjà pour cette marque")
		}
		modele.Nom = strings.TrimSpace(body.Nom)
	}
	if body.Description != nil {
		modele.Description = body.Description
	}

	if err := h.DB.Save(&modele).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateModel")
	}
	return c.Status(fiber.StatusOK).JSON(modele)
}

// Delete handles DELETE /api/modeles/:id
func (h *ModelHandler) Delete(c *fiber.Ctx) error {
	var modele models.VehicleModel
	if err := h.DB.First(&modele, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Modèle introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteModel")
	}

	var dependents int64
	h.DB.Model(&models.Vehicle{}).Where("model_id = ?", modele.ID).Count(&dependents)
	if dependents > 0 {
		return utils.ConflictResponse(c, "Le modèle possède encore des véhicules")
	}

	res := h.DB.Delete(&modele)
	if res.Error != nil {
		return utils.ErrorResponse(c, res.Error.Error(), fiber.StatusInternalServerError, "deleteModel")
	}
	return utils.MutationSuccessResponse(c, res.RowsAffected)
}
