// catalog.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/utils"
	"gorm.io/gorm"
)

// CatalogHandler serves the public browsing drill-down
type CatalogHandler struct {
	DB       *gorm.DB
	Defaults services.SpecDefaults
}

// GetBrands handles GET /api/catalogue/brands
// @Summary List brands with vehicle counts
// @Description All brands of the catalogue, each with its computed vehicle count
// @Tags Catalogue
// @Produce json
// @Success 200 {array} services.BrandSummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalogue/brands [get]
func (h *CatalogHandler) GetBrands(c *fiber.Ctx) error {
	brands, err := services.GetBrands(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getBrands")
	}
	return c.Status(fiber.StatusOK).JSON(brands)
}

// GetModelsByBrand handles GET /api/catalogue/brands/:brandId/models
// @Summary List models of one brand
// @Tags Catalogue
// @Produce json
// @Param brandId path string true "Brand ID"
// @Success 200 {array} services.ModelSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalogue/brands/{brandId}/models [get]
func (h *CatalogHandler) GetModelsByBrand(c *fiber.Ctx) error {
	brandID := c.Params("brandId")

	modeles, err := services.GetModelsByBrand(h.DB, brandID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Marque introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getModelsByBrand")
	}
	return c.Status(fiber.StatusOK).JSON(modeles)
}

// GetYearsByModel handles GET /api/catalogue/models/:modelId/years
// @Summary List available years of one model
// @Description Year groups with vehicle count and price range, newest first
// @Tags Catalogue
// @Produce json
// @Param modelId path string true "Model ID"
// @Success 200 {array} services.YearGroup
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalogue/models/{modelId}/years [get]
func (h *CatalogHandler) GetYearsByModel(c *fiber.Ctx) error {
	modelID := c.Params("modelId")

	years, err := services.GetYearsByModel(h.DB, modelID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Modèle introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getYearsByModel")
	}
	return c.Status(fiber.StatusOK).JSON(years)
}

// GetVehicles handles GET /api/catalogue/vehicules
// @Summary List available vehicles matching the filters
// @Tags Catalogue
// @Produce json
// @Param marque_id query string false "Brand ID"
// @Param modele_id query string false "Model ID"
// @Param annee query int false "Year"
// @Param couleur query string false "Color"
// @Param carburant query string false "Fuel type"
// @Param transmission query string false "Transmission"
// @Param prixMin query number false "Minimum price"
// @Param prixMax query number false "Maximum price"
// @Success 200 {array} models.Vehicle
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalogue/vehicules [get]
func (h *CatalogHandler) GetVehicles(c *fiber.Ctx) error {
	filters := services.VehicleFilters{
		BrandID:      c.Query("marque_id"),
		ModelID:      c.Query("modele_id"),
		Annee:        c.QueryInt("annee", 0),
		Couleur:      c.Query("couleur"),
		Carburant:    c.Query("carburant"),
		Transmission: c.Query("transmission"),
		PrixMin:      queryFloat(c, "prixMin"),
		PrixMax:      queryFloat(c, "prixMax"),
	}

	vehicules, err := services.GetVehiclesByCriteria(h.DB, filters)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getVehiclesByCriteria")
	}
	return c.Status(fiber.StatusOK).JSON(vehicules)
}

// GetVehicleBySlug handles GET /api/catalogue/vehicules/:slug
// @Summary Resolve a public vehicle slug
// @Tags Catalogue
// @Produce json
// @Param slug path string true "Vehicle slug (marque-modele-annee)"
// @Success 200 {object} models.Vehicle
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalogue/vehicules/{slug} [get]
func (h *CatalogHandler) GetVehicleBySlug(c *fiber.Ctx) error {
	wanted := c.Params("slug")

	vehicule, err := services.GetVehicleBySlug(h.DB, wanted, h.Defaults)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Véhicule introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getVehicleBySlug")
	}
	return c.Status(fiber.StatusOK).JSON(vehicule)
}
