// images.go
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
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/services"
	"github.com/tse-auto/catalogue-server/internal/storage"
	"github.com/tse-auto/catalogue-server/internal/types"
	"github.com/tse-auto/catalogue-server/internal/utils"
	"gorm.io/gorm"
)

// ImageHandler serves vehicle image and document management
type ImageHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

// uploadResult reports the outcome of one file in a multi-file upload
type uploadResult struct {
	Filename string               `json:"filename"`
	Ok       bool                 `json:"ok"`
	Error    string               `json:"error,omitempty"`
	Image    *models.VehicleImage `json:"image,omitempty"`
}

type reorderBody struct {
	ImageIDs types.FlexList[string] `json:"image_ids"`
}

// ListImages handles GET /api/vehicules/:id/images
func (h *ImageHandler) ListImages(c *fiber.Ctx) error {
	images, err := services.ListImages(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listImages")
	}
	return c.Status(fiber.StatusOK).JSON(images)
}

// UploadImages handles POST /api/vehicules/:id/images
// @Summary Upload one or more images for a vehicle
// @Description Multipart upload under the "images" field. Each file is
// @Description validated, resized and stored independently; one bad file does
// @Description not fail the batch.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {array} uploadResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /vehicules/{id}/images [post]
func (h *ImageHandler) UploadImages(c *fiber.Ctx) error {
	vehicleID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, "Formulaire multipart invalide", fiber.StatusBadRequest, "uploadImages")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, "Aucun fichier fourni", fiber.StatusBadRequest, "uploadImages")
	}

	var altText *string
	if values := form.Value["alt_text"]; len(values) > 0 && values[0] != "" {
		altText = &values[0]
	}

	results := make([]uploadResult, 0, len(files))
	for _, fh := range files {
		result := uploadResult{Filename: fh.Filename}

		file, err := fh.Open()
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		payload, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		image, err := services.AttachImage(c.Context(), h.DB, h.Store,
			vehicleID, fh.Filename, fh.Header.Get("Content-Type"), payload, altText)
		if err != nil {
			if err.Error() == "not found" {
				return utils.NotFoundResponse(c, "Véhicule introuvable")
			}
			result.Error = err.Error()
		} else {
			result.Ok = true
			result.Image = image
		}
		results = append(results, result)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

// SetPrimary handles PUT /api/vehicules/:id/images/:imageId/principale
// @Summary Mark one image as the vehicle's primary image
// @Tags Images
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /vehicules/{id}/images/{imageId}/principale [put]
func (h *ImageHandler) SetPrimary(c *fiber.Ctx) error {
	err := services.SetPrimaryImage(h.DB, c.Params("id"), c.Params("imageId"))
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Image introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "setPrimaryImage")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// Reorder handles PUT /api/vehicules/:id/images/ordre
func (h *ImageHandler) Reorder(c *fiber.Ctx) error {
	var body reorderBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Corps de requête invalide", fiber.StatusBadRequest, "reorderImages")
	}
	if len(body.ImageIDs) == 0 {
		return utils.ErrorResponse(c, "Au moins une image est requise", fiber.StatusBadRequest, "reorderImages")
	}

	err := services.ReorderImages(h.DB, c.Params("id"), body.ImageIDs.Slice())
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Image introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "reorderImages")
	}
	return utils.MutationSuccessResponse(c, int64(len(body.ImageIDs)))
}

// DeleteImage handles DELETE /api/vehicules/:id/images/:imageId
func (h *ImageHandler) DeleteImage(c *fiber.Ctx) error {
	err := services.DeleteImage(c.Context(), h.DB, h.Store, c.Params("id"), c.Params("imageId"))
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Image introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteImage")
	}
	return utils.MutationSuccessResponse(c, 1)
}

// ListDocuments handles GET /api/vehicules/:id/documents
func (h *ImageHandler) ListDocuments(c *fiber.Ctx) error {
	documents, err := services.ListDocuments(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listDocuments")
	}
	return c.Status(fiber.StatusOK).JSON(documents)
}

// UploadDocument handles POST /api/vehicules/:id/documents
// @Summary Upload one document for a vehicle
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 201 {object} models.VehicleDocument
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /vehicules/{id}/documents [post]
func (h *ImageHandler) UploadDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("document")
	if err != nil {
		return utils.ErrorResponse(c, "Aucun fichier fourni", fiber.StatusBadRequest, "uploadDocument")
	}

	typeDocument := c.FormValue("type_document", "autre")

	file, err := fh.Open()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "uploadDocument")
	}
	payload, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "uploadDocument")
	}

	document, err := services.AttachDocument(c.Context(), h.DB, h.Store,
		c.Params("id"), fh.Filename, typeDocument, fh.Header.Get("Content-Type"), payload)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Véhicule introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "uploadDocument")
	}

	return c.Status(fiber.StatusCreated).JSON(document)
}

// DeleteDocument handles DELETE /api/vehicules/:id/documents/:documentId
func (h *ImageHandler) DeleteDocument(c *fiber.Ctx) error {
	err := services.DeleteDocument(c.Context(), h.DB, h.Store, c.Params("id"), c.Params("documentId"))
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Document introuvable")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteDocument")
	}
	return utils.MutationSuccessResponse(c, 1)
}
