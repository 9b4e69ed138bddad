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

// BrandHandler serves the back-office brand CRUD
type BrandHandler struct {
	DB *gorm.DB
}

// brandBody is the create/update payload for a brand
type brandBody struct {
	Nom         string  `json:"nom"`
	Logo        *string `json:"logo"`
	Description *string `json:"description"`
}

// brandWithStats decorates a brand with its aggregate counts
type brandWithStats struct {
	models.Brand
	NbModeles   int `json:"nbModeles"`
	NbVehicules int `json:"nbVehicules"`
}

// List handles GET /api/brands
// @Summary List brands for the back office
// @Tags Brands
// @Produce json
// @Param search query string false "Name search (substring, case-insensitive)"
// @Param recherche query string false "Alias for search"
// @Param include_stats query bool false "Include model/vehicle counts"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /brands [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	query := h.DB.Model(&models.Brand{}).Order("nom")
	// recherche kept as an alias for older admin clients
	search := c.Query("search", c.Query("recherche"))
	if search != "" {
		query = query.Where("LOWER(nom) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listBrands")
	}

	query = query.Offset((page - 1) * limit).Limit(limit)

	includeStats := c.QueryBool("include_stats", false)
	if includeStats {
		query = query.Preload("Modeles").Preload("Vehicules")
	}

	var brands []models.Brand
	if err := query.Find(&brands).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listBrands")
	}

	if !includeStats {
		return c.Status(fiber.StatusOK).JSON(listEnvelope(brands, total, page, limit))
	}

	decorated := make([]brandWithStats, 0, len(brands))
	for _, b := range brands {
		entry := brandWithStats{Brand: b, NbModeles: len(b.Modeles), NbVehicules: len(b.Vehicules)}
		// Counts only; the full association payloads stay out of the list
		entry.Modeles = nil
		entry.Vehicules = nil
		decorated = append(decorated, entry)
	}
	return c.Status(fiber.StatusOK).JSON(listEnvelope(decorated, total, page, limit))
}

// Get handles GET /api/brands/:id
// @Summary Fetch one brand with its models
// @Tags Brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} models.Brand
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /brands/{id} [get]
func (h *BrandHandler) Get(c *fiber.Ctx) error {
	var brand models.Brand
	err := h.DB.Preload("Modeles").First(&brand, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Marque introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getBrand")
	}
	return c.Status(fiber.StatusOK).JSON(brand)
}

// Create handles POST /api/brands
// @Summary Create a brand
// @Tags Brands
// @Accept json
// @Produce json
// @Param brand body brandBody true "Brand payload"
// @Success 201 {object} models.Brand
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /brands [post]
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var body brandBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "createBrand")
	}

	result := validation.ValidateBrand(validation.BrandInput{
		Nom:         body.Nom,
		Logo:        body.Logo,
		Description: body.Description,
	}, false)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	var count int64
	h.DB.Model(&models.Brand{}).Where("LOWER(nom) = ?", strings.ToLower(body.Nom)).Count(&count)
	if count > 0 {
		return utils.ConflictResponse(c, "Une marque portant ce nom existe déjà")
	}

	brand := models.Brand{
		Nom:         strings.TrimSpace(body.Nom),
		Logo:        body.Logo,
		Description: body.Description,
	}
	if err := h.DB.Create(&brand).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createBrand")
	}

	return c.Status(fiber.StatusCreated).JSON(brand)
}

// Update handles PUT /api/brands/:id
// @Summary Update a brand
// @Tags Brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param brand body brandBody true "Fields to update"
// @Success 200 {object} models.Brand
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /brands/{id} [put]
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Marque introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateBrand")
	}

	var body brandBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "updateBrand")
	}

	result := validation.ValidateBrand(validation.BrandInput{
		Nom:         body.Nom,
		Logo:        body.Logo,
		Description: body.Description,
	}, true)
	if !result.IsValid {
		return utils.ValidationErrorResponse(c, result.Errors, result.Warnings)
	}

	if body.Nom != "" && !strings.EqualFold(body.Nom, brand.Nom) {
		var count int64
		h.DB.Model(&models.Brand{}).
			Where("LOWER(nom) = ? AND id <> ?", strings.ToLower(body.Nom), brand.ID).
			Count(&count)
		if count > 0 {
			return utils.ConflictResponse(c, "Une marque portant ce nom existe déjà")
		}
		brand.Nom = strings.TrimSpace(body.Nom)
	}
	if body.Logo != nil {
		brand.Logo = body.Logo
	}
	if body.Description != nil {
		brand.Description = body.Description
	}

	if err := h.DB.Save(&brand).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateBrand")
	}
	return c.Status(fiber.StatusOK).JSON(brand)
}

// Delete handles DELETE /api/brands/:id
// @Summary Delete a brand without dependent rows
// @Tags Brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /brands/{id} [delete]
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	var brand models.Brand
	if err := h.DB.First(&brand, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, "Marque introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteBrand")
	}

	var dependents int64
	h.DB.Model(&models.VehicleModel{}).Where("brand_id = ?", brand.ID).Count(&dependents)
	if dependents > 0 {
		return utils.ConflictResponse(c, "La marque possède encore des modèles")
	}
	h.DB.Model(&models.Vehicle{}).Where("brand_id = ?", brand.ID).Count(&dependents)
	if dependents > 0 {
		return utils.ConflictResponse(c, "La marque possède encore des véhicules")
	}

	res := h.DB.Delete(&brand)
	if res.Error != nil {
		return utils.ErrorResponse(c, res.Error.Error(), fiber.StatusInternalServerError, "deleteBrand")
	}
	return utils.MutationSuccessResponse(c, res.RowsAffected)
}
