package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/middleware"
	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}, &models.UserSession{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// setupAuthApp mounts one protected route behind the given guard, with the
// CustomError-aware error handler the server uses.
func setupAuthApp(guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*types.CustomError); ok {
				return c.SendStatus(e.Code)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Get("/protected", guard, func(c *fiber.Ctx) error {
		user := middleware.AdminUserFromContext(c)
		return c.JSON(fiber.Map{"email": user.Email})
	})
	return app
}

func loginAs(t *testing.T, db *gorm.DB, role string) string {
	hash, err := services.HashPassword("motdepasse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := models.AdminUser{
		Email:        role + "@tse-auto.com",
		PasswordHash: hash,
		Role:         role,
		Actif:        true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	result, err := services.Login(db, testSecret, user.Email, "motdepasse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return result.Token
}

func TestAuthAdminRejectsMissingCookie(t *testing.T) {
	db := setupAuthDB(t)
	app := setupAuthApp(middleware.AuthAdmin(db, testSecret))

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}

func TestAuthAdminRejectsBogusToken(t *testing.T) {
	db := setupAuthDB(t)
	app := setupAuthApp(middleware.AuthAdmin(db, testSecret))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", services.AuthCookieName+"=not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}

func TestAuthAdminAcceptsValidSession(t *testing.T) {
	db := setupAuthDB(t)
	token := loginAs(t, db, models.RoleAdmin)
	app := setupAuthApp(middleware.AuthAdmin(db, testSecret))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", services.AuthCookieName+"="+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestAuthSuperAdminRejectsPlainAdmin(t *testing.T) {
	db := setupAuthDB(t)
	token := loginAs(t, db, models.RoleAdmin)
	app := setupAuthApp(middleware.AuthSuperAdmin(db, testSecret))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", services.AuthCookieName+"="+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}
}

func TestAuthSuperAdminAcceptsSuperAdmin(t *testing.T) {
	db := setupAuthDB(t)
	token := loginAs(t, db, models.RoleSuperAdmin)
	app := setupAuthApp(middleware.AuthSuperAdmin(db, testSecret))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", services.AuthCookieName+"="+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}
