package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fuel types (carburant)
const (
	CarburantEssence    = "Essence"
	CarburantDiesel     = "Diesel"
	CarburantHybride    = "Hybride"
	CarburantElectrique = "Électrique"
)

// Transmissions
const (
	TransmissionManuelle    = "Manuelle"
	TransmissionAutomatique = "Automatique"
)

// Vehicle statuses (statut)
const (
	StatutDisponible  = "Disponible"
	StatutVendu       = "Vendu"
	StatutReserve     = "Réservé"
	StatutMaintenance = "En maintenance"
)

// Carburants lists the accepted fuel type values
var Carburants = []string{CarburantEssence, CarburantDiesel, CarburantHybride, CarburantElectrique}

// Transmissions lists the accepted transmission values
var Transmissions = []string{TransmissionManuelle, TransmissionAutomatique}

// Statuts lists the accepted vehicle status values
var Statuts = []string{StatutDisponible, StatutVendu, StatutReserve, StatutMaintenance}

// Vehicle represents a single catalogue vehicle
type Vehicle struct {
	ID           string   `gorm:"type:char(36);primaryKey" json:"id"`
	BrandID      string   `gorm:"type:char(36);not null;index" json:"brand_id"`
	ModelID      string   `gorm:"type:char(36);not null;index" json:"model_id"`
	Annee        int      `gorm:"not null;index" json:"annee"`
	Couleur      string   `gorm:"size:50;not null" json:"couleur"`
	Prix         *float64 `json:"prix,omitempty"`
	Kilometrage  *int     `json:"kilometrage,omitempty"`
	Carburant    string   `gorm:"size:20;not null" json:"carburant"`
	Transmission string   `gorm:"size:20;not null" json:"transmission"`
	Statut       string   `gorm:"size:20;not null;default:Disponible;index:idx_vehicules_statut" json:"statut"`
	Description  string   `gorm:"size:5000" json:"description,omitempty"`

	// Technical specs, optional free-text
	Puissance    *string `gorm:"size:50" json:"puissance,omitempty"`
	Cylindree    *string `gorm:"size:50" json:"cylindree,omitempty"`
	Consommation *string `gorm:"size:50" json:"consommation,omitempty"`
	Emissions    *string `gorm:"size:50" json:"emissions,omitempty"`
	NbPortes     *int    `json:"nb_portes,omitempty"`
	NbPlaces     *int    `json:"nb_places,omitempty"`
	CoffreLitres *int    `json:"coffre_litres,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Brand      *Brand            `gorm:"foreignKey:BrandID" json:"marque,omitempty"`
	Modele     *VehicleModel     `gorm:"foreignKey:ModelID" json:"modele,omitempty"`
	Equipments []Equipment       `gorm:"many2many:vehicule_equipements;" json:"equipements,omitempty"`
	Images     []VehicleImage    `gorm:"foreignKey:VehicleID" json:"images,omitempty"`
	Documents  []VehicleDocument `gorm:"foreignKey:VehicleID" json:"documents,omitempty"`
}

// TableName overrides the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicules"
}

// BeforeCreate assigns a UUID primary key when missing
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Equipment represents an option/feature attachable to many vehicles
type Equipment struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Nom         string    `gorm:"size:100;not null" json:"nom"`
	Categorie   *string   `gorm:"size:50" json:"categorie,omitempty"`
	Description *string   `gorm:"size:1000" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for Equipment
func (Equipment) TableName() string {
	return "equipements"
}

// BeforeCreate assigns a UUID primary key when missing
func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
