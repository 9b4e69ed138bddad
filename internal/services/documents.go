package services

import (
	"context"
	"fmt"
	"log"

	"github.com/tse-auto/catalogue-server/internal/models"
	"github.com/tse-auto/catalogue-server/internal/storage"
	"gorm.io/gorm"
)

// ListDocuments returns a vehicle's documents, newest first.
func ListDocuments(db *gorm.DB, vehicleID string) ([]models.VehicleDocument, error) {
	var documents []models.VehicleDocument
	err := db.Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&documents).Error
	return documents, err
}

// AttachDocument validates, uploads and records one document for a vehicle,
// with the same orphan cleanup as AttachImage.
func AttachDocument(ctx context.Context, db *gorm.DB, store storage.Store, vehicleID, filename, typeDocument, contentType string, payload []byte) (*models.VehicleDocument, error) {
	var vehicle models.Vehicle
	if err := db.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}

	if err := storage.ValidateUpload(storage.KindDocument, contentType, int64(len(payload))); err != nil {
		return nil, err
	}

	key := storage.UniqueFileName(filename, string(storage.KindDocument))
	url, err := store.Upload(ctx, key, contentType, payload)
	if err != nil {
		return nil, err
	}

	size := int64(len(payload))
	mime := contentType
	document := models.VehicleDocument{
		VehicleID:    vehicleID,
		Nom:          filename,
		TypeDocument: typeDocument,
		URL:          url,
		TailleOctets: &size,
		MimeType:     &mime,
	}
	if err := db.Create(&document).Error; err != nil {
		if delErr := store.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to clean up uploaded object %s: %v", key, delErr)
		}
		return nil, err
	}

	return &document, nil
}

// DeleteDocument removes the row, then deletes the stored object best-effort.
func DeleteDocument(ctx context.Context, db *gorm.DB, store storage.Store, vehicleID, documentID string) error {
	var document models.VehicleDocument
	if err := db.Where("id = ? AND vehicle_id = ?", documentID, vehicleID).First(&document).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("not found")
		}
		return err
	}

	if err := db.Delete(&document).Error; err != nil {
		return err
	}

	if key := objectKeyFromURL(store, document.URL); key != "" {
		if err := store.Delete(ctx, key); err != nil {
			log.Printf("Failed to delete stored object for document %s: %v", documentID, err)
		}
	}

	return nil
}
