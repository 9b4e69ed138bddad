package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/types"
	"gorm.io/gorm"
)

// AuthAdmin validates the auth cookie for any back-office role
func AuthAdmin(db *gorm.DB, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, db, jwtSecret, []string{models.RoleAdmin, models.RoleSuperAdmin}, "authorization.admin")
	}
}

// AuthSuperAdmin validates the auth cookie for the super_admin role only
func AuthSuperAdmin(db *gorm.DB, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, db, jwtSecret, []string{models.RoleSuperAdmin}, "authorization.super_admin")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, db *gorm.DB, jwtSecret string, roles []string, errorType string) error {
	token := c.Cookies(services.AuthCookieName)
	if token == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Auth cookie %q not found", services.AuthCookieName),
			Type:    errorType,
		}
	}

	user, err := services.ValidateSession(db, jwtSecret, token)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	allowed := false
	for _, role := range roles {
		if user.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Role %q is not allowed here", user.Role),
			Type:    errorType,
		}
	}

	c.Locals("adminUser", user)
	return c.Next()
}

// AdminUserFromContext returns the authenticated user set by the middleware
func AdminUserFromContext(c *fiber.Ctx) *models.AdminUser {
	user, _ := c.Locals("adminUser").(*models.AdminUser)
	return user
}
