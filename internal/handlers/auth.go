// auth.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/middleware"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler serves admin login, logout and session introspection
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
// @Summary Authenticate an admin user
// @Description Sets the session cookie on success. Wrong email and wrong
// @Description password return the same message.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginBody true "Email and password"
// @Success 200 {object} models.AdminUser
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "login")
	}
	if body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Email et mot de passe requis", fiber.StatusBadRequest, "login")
	}

	result, err := services.Login(h.DB, h.JWTSecret, body.Email, body.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.AuthCookieName,
		Value:    result.Token,
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(result.User)
}

// Logout handles POST /api/auth/logout
// @Summary End the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(services.AuthCookieName); token != "" {
		if err := services.Logout(h.DB, h.JWTSecret, token); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "logout")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return utils.MutationSuccessResponse(c, 1)
}

// Me handles GET /api/auth/me. Runs behind the auth middleware, so the user is
// always present here.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.AdminUserFromContext(c)
	if user == nil {
		return utils.ErrorResponse(c, "Session invalide", fiber.StatusForbidden, "me")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
