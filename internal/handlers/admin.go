package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler serves dashboard statistics and CSV exports
type AdminHandler struct {
	DB *gorm.DB
}

// Stats handles GET /api/admin/stats
// @Summary Back-office dashboard statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetDashboardStats(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "adminStats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// Export handles GET /api/admin/export/:kind
// @Summary Export catalogue data as CSV
// @Description kind is one of vehicules, marques, stats-marques
// @Tags Admin
// @Produce text/csv
// @Param kind path string true "Export kind"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/export/{kind} [get]
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	kind := c.Params("kind")

	var buf bytes.Buffer
	var err error
	switch kind {
	case "vehicules":
		err = services.ExportVehiclesCSV(h.DB, &buf)
	case "marques":
		err = services.ExportBrandsCSV(h.DB, &buf)
	case "stats-marques":
		err = services.ExportStatsByBrandCSV(h.DB, &buf)
	default:
		return utils.ErrorResponse(c, fmt.Sprintf("Export inconnu: %s", kind), fiber.StatusBadRequest, "adminExport")
	}
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "adminExport")
	}

	filename := fmt.Sprintf("%s-%s.csv", kind, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
