package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand represents a vehicle manufacturer (marque)
type Brand struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Nom         string    `gorm:"size:100;not null;uniqueIndex" json:"nom"`
	Logo        *string   `gorm:"size:500" json:"logo,omitempty"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Modeles   []VehicleModel `gorm:"foreignKey:BrandID" json:"modeles,omitempty"`
	Vehicules []Vehicle      `gorm:"foreignKey:BrandID" json:"vehicules,omitempty"`
}

// TableName overrides the table name for Brand
func (Brand) TableName() string {
	return "marques"
}

// BeforeCreate assigns a UUID primary key when missing
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// VehicleModel represents a model line belonging to one brand
type VehicleModel struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Nom         string    `gorm:"size:100;not null;index" json:"nom"`
	BrandID     string    `gorm:"type:char(36);not null;index" json:"brand_id"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Brand     *Brand    `gorm:"foreignKey:BrandID" json:"marque,omitempty"`
	Vehicules []Vehicle `gorm:"foreignKey:ModelID" json:"vehicules,omitempty"`
}

// TableName overrides the table name for VehicleModel
func (VehicleModel) TableName() string {
	return "modeles"
}

// BeforeCreate assigns a UUID primary key when missing
func (m *VehicleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
