// main.go
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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/tse-auto/catalogue-server/internal/config"
	"github.com/tse-auto/catalogue-server/internal/database"
	"github.com/tse-auto/catalogue-server/internal/handlers"
	"github.com/tse-auto/catalogue-server/internal/middleware"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/storage"
	"github.com/tse-auto/catalogue-server/internal/types"

	_ "github.com/tse-auto/catalogue-server/docs/api" // Swagger docs
)

// @title TSE Catalogue API
// @version 1.0.0
// @description Vehicle catalogue and back-office API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email contact@tse-auto.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name tse-auth-token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Object storage
	store, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}

	// Embedded model defaults for thin catalogue records
	defaults, err := services.NewEmbeddedDefaults()
	if err != nil {
		log.Fatalf("Failed to load model defaults: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    60 * 1024 * 1024, // documents up to 50 MB plus form overhead
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("tse-catalogue")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	catalogHandler := &handlers.CatalogHandler{DB: db, Defaults: defaults}
	brandHandler := &handlers.BrandHandler{DB: db}
	modelHandler := &handlers.ModelHandler{DB: db}
	vehicleHandler := &handlers.VehicleHandler{DB: db}
	imageHandler := &handlers.ImageHandler{DB: db, Store: store}
	equipmentHandler := &handlers.EquipmentHandler{DB: db}
	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: cfg.JWTSecret}
	adminHandler := &handlers.AdminHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	// Health
	api.Get("/health", healthHandler.Check)

	// Public catalogue drill-down
	catalogue := api.Group("/catalogue")
	catalogue.Get("/brands", catalogHandler.GetBrands)
	catalogue.Get("/brands/:brandId/models", catalogHandler.GetModelsByBrand)
	catalogue.Get("/models/:modelId/years", catalogHandler.GetYearsByModel)
	catalogue.Get("/vehicules", catalogHandler.GetVehicles)
	catalogue.Get("/vehicules/:slug", catalogHandler.GetVehicleBySlug)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthAdmin(db, cfg.JWTSecret), authHandler.Me)

	// Back-office routes, all behind the admin cookie
	authAdmin := middleware.AuthAdmin(db, cfg.JWTSecret)

	brands := api.Group("/brands", authAdmin)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.Get)
	brands.Post("/", brandHandler.Create)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", brandHandler.Delete)

	modeles := api.Group("/modeles", authAdmin)
	modeles.Get("/", modelHandler.List)
	modeles.Get("/:id", modelHandler.Get)
	modeles.Post("/", modelHandler.Create)
	modeles.Put("/:id", modelHandler.Update)
	modeles.Delete("/:id", modelHandler.Delete)

	vehicules := api.Group("/vehicules", authAdmin)
	vehicules.Get("/", vehicleHandler.List)
	vehicules.Put("/bulk", vehicleHandler.Bulk)
	vehicules.Get("/:id", vehicleHandler.Get)
	vehicules.Post("/", vehicleHandler.Create)
	vehicules.Put("/:id", vehicleHandler.Update)
	vehicules.Delete("/:id", vehicleHandler.Delete)

	vehicules.Get("/:id/images", imageHandler.ListImages)
	vehicules.Post("/:id/images", imageHandler.UploadImages)
	vehicules.Put("/:id/images/ordre", imageHandler.Reorder)
	vehicules.Put("/:id/images/:imageId/principale", imageHandler.SetPrimary)
	vehicules.Delete("/:id/images/:imageId", imageHandler.DeleteImage)

	vehicules.Get("/:id/documents", imageHandler.ListDocuments)
	vehicules.Post("/:id/documents", imageHandler.UploadDocument)
	vehicules.Delete("/:id/documents/:documentId", imageHandler.DeleteDocument)

	equipements := api.Group("/equipements", authAdmin)
	equipements.Get("/", equipmentHandler.List)
	equipements.Get("/:id", equipmentHandler.Get)
	equipements.Post("/", equipmentHandler.Create)
	equipements.Put("/:id", equipmentHandler.Update)
	equipements.Delete("/:id", equipmentHandler.Delete)

	admin := api.Group("/admin", authAdmin)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/export/:kind", adminHandler.Export)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
