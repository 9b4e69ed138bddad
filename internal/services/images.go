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

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListImages returns a vehicle's images ordered for display.
func ListImages(db *gorm.DB, vehicleID string) ([]models.VehicleImage, error) {
	var images []models.VehicleImage
	err := db.Where("vehicle_id = ?", vehicleID).
		Order("display_order").
		Find(&images).Error
	return images, err
}

// AttachImage validates, resizes, uploads and records one image for a vehicle.
// If the database insert fails after a successful upload, the uploaded object
// is deleted best-effort.
func AttachImage(ctx context.Context, db *gorm.DB, store storage.Store, vehicleID, filename, contentType string, payload []byte, altText *string) (*models.VehicleImage, error) {
	var vehicle models.Vehicle
	if err := db.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}

	if err := storage.ValidateUpload(storage.KindImage, contentType, int64(len(payload))); err != nil {
		return nil, err
	}

	resized, err := storage.FitImage(payload, contentType, storage.DefaultMaxWidth, storage.DefaultMaxHeight)
	if err != nil {
		return nil, err
	}

	key := storage.UniqueFileName(filename, string(storage.KindImage))
	url, err := store.Upload(ctx, key, contentType, resized)
	if err != nil {
		return nil, err
	}

	var maxOrder int
	if err := db.Model(&models.VehicleImage{}).
		Where("vehicle_id = ?", vehicleID).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&maxOrder).Error; err != nil {
		if delErr := store.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to clean up uploaded object %s: %v", key, delErr)
		}
		return nil, err
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"taille_octets": len(resized),
		"content_type":  contentType,
	})

	image := models.VehicleImage{
		VehicleID:    vehicleID,
		URL:          url,
		AltText:      altText,
		DisplayOrder: maxOrder + 1,
		Metadata:     datatypes.JSON(meta),
	}
	if err := db.Create(&image).Error; err != nil {
		// Best-effort cleanup of the orphaned object
		if delErr := store.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to clean up uploaded object %s: %v", key, delErr)
		}
		return nil, err
	}

	return &image, nil
}

// SetPrimaryImage marks one image as the vehicle's primary. Both writes run in
// one transaction so exactly one image ends up primary.
func SetPrimaryImage(db *gorm.DB, vehicleID, imageID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var image models.VehicleImage
		if err := tx.Where("id = ? AND vehicle_id = ?", imageID, vehicleID).First(&image).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}

		if err := tx.Model(&models.VehicleImage{}).
			Where("vehicle_id = ?", vehicleID).
			Update("est_principale", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.VehicleImage{}).
			Where("id = ?", imageID).
			Update("est_principale", true).Error
	})
}

// ReorderImages applies a new display order given the full ordered id list.
func ReorderImages(db *gorm.DB, vehicleID string, orderedIDs []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&models.VehicleImage{}).
				Where("id = ? AND vehicle_id = ?", id, vehicleID).
				Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("not found")
			}
		}
		return nil
	})
}

// DeleteImage removes the row, then deletes the stored object best-effort.
func DeleteImage(ctx context.Context, db *gorm.DB, store storage.Store, vehicleID, imageID string) error {
	var image models.VehicleImage
	if err := db.Where("id = ? AND vehicle_id = ?", imageID, vehicleID).First(&image).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("not found")
		}
		return err
	}

	if err := db.Delete(&image).Error; err != nil {
		return err
	}

	if key := objectKeyFromURL(store, image.URL); key != "" {
		if err := store.Delete(ctx, key); err != nil {
			log.Printf("Failed to delete stored object for image %s: %v", imageID, err)
		}
	}

	return nil
}

// objectKeyFromURL recovers the object key from a stored public URL by
// stripping the store's URL prefix for an empty key.
func objectKeyFromURL(store storage.Store, url string) string {
	prefix := store.PublicURL("")
	if prefix == "" || !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
