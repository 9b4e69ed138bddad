package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/config"
	"github.com/tse-auto/catalogue-server/internal/services"
	"gorm.io/gorm"
)

// HealthHandler serves the liveness/readiness endpoint
type HealthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Check handles GET /api/health
// @Summary Service health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
