package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VehicleImage represents a gallery image of a vehicle.
// At most one image per vehicle carries est_principale=true; the invariant is
// maintained by services.SetPrimaryImage inside a single transaction.
type VehicleImage struct {
	ID            string         `gorm:"type:char(36);primaryKey" json:"id"`
	VehicleID     string         `gorm:"type:char(36);not null;index" json:"vehicle_id"`
	URL           string         `gorm:"size:500;not null" json:"url"`
	AltText       *string        `gorm:"size:255" json:"alt_text,omitempty"`
	DisplayOrder  int            `gorm:"not null;default:0" json:"display_order"`
	EstPrincipale bool           `gorm:"not null;default:false" json:"est_principale"`
	Metadata      datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName overrides the table name for VehicleImage
func (VehicleImage) TableName() string {
	return "vehicule_images"
}

// BeforeCreate assigns a UUID primary key when missing
func (i *VehicleImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// VehicleDocument represents an attached document (carte grise, rapport, etc.)
type VehicleDocument struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	VehicleID    string    `gorm:"type:char(36);not null;index" json:"vehicle_id"`
	Nom          string    `gorm:"size:255;not null" json:"nom"`
	TypeDocument string    `gorm:"size:50;not null" json:"type_document"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	TailleOctets *int64    `json:"taille_octets,omitempty"`
	MimeType     *string   `gorm:"size:100" json:"mime_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name for VehicleDocument
func (VehicleDocument) TableName() string {
	return "vehicule_documents"
}

// BeforeCreate assigns a UUID primary key when missing
func (d *VehicleDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
