package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tse-auto/catalogue-server/data"
	"github.com/tse-auto/catalogue-server/internal/models"
)

// ModelSpec is a set of fallback technical specs for one model line.
type ModelSpec struct {
	Puissance    string `json:"puissance"`
	Cylindree    string `json:"cylindree"`
	Consommation string `json:"consommation"`
	Emissions    string `json:"emissions"`
	NbPortes     int    `json:"nb_portes"`
	NbPlaces     int    `json:"nb_places"`
	CoffreLitres int    `json:"coffre_litres"`
}

// SpecDefaults supplies placeholder technical specs for vehicles whose record
// has none. This is display filler, not sourced data; it stays behind an
// interface so a real data source can replace it.
type SpecDefaults interface {
	Lookup(marque, modele string) (ModelSpec, bool)
}

type specEntry struct {
	Marque string `json:"marque"`
	Modele string `json:"modele"`
	ModelSpec
}

type embeddedDefaults struct {
	entries []specEntry
}

// NewEmbeddedDefaults loads the placeholder spec table shipped in the binary.
func NewEmbeddedDefaults() (SpecDefaults, error) {
	var entries []specEntry
	if err := json.Unmarshal(data.ModelDefaults, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse embedded model defaults: %w", err)
	}
	return &embeddedDefaults{entries: entries}, nil
}

// Lookup matches by case-insensitive brand and model substring.
func (d *embeddedDefaults) Lookup(marque, modele string) (ModelSpec, bool) {
	marque = strings.ToLower(marque)
	modele = strings.ToLower(modele)

	for _, e := range d.entries {
		if strings.Contains(marque, strings.ToLower(e.Marque)) &&
			strings.Contains(modele, strings.ToLower(e.Modele)) {
			return e.ModelSpec, true
		}
	}
	return ModelSpec{}, false
}

// ApplyDefaults backfills missing technical specs on a vehicle from the
// defaults provider. Returns true when at least one field was filled.
func ApplyDefaults(v *models.Vehicle, defaults SpecDefaults) bool {
	if defaults == nil || v.Brand == nil || v.Modele == nil {
		return false
	}

	spec, ok := defaults.Lookup(v.Brand.Nom, v.Modele.Nom)
	if !ok {
		return false
	}

	applied := false

	if (v.Puissance == nil || *v.Puissance == "") && spec.Puissance != "" {
		s := spec.Puissance
		v.Puissance = &s
		applied = true
	}
	if (v.Cylindree == nil || *v.Cylindree == "") && spec.Cylindree != "" {
		s := spec.Cylindree
		v.Cylindree = &s
		applied = true
	}
	if (v.Consommation == nil || *v.Consommation == "") && spec.Consommation != "" {
		s := spec.Consommation
		v.Consommation = &s
		applied = true
	}
	if (v.Emissions == nil || *v.Emissions == "") && spec.Emissions != "" {
		s := spec.Emissions
		v.Emissions = &s
		applied = true
	}
	if v.NbPortes == nil && spec.NbPortes != 0 {
		n := spec.NbPortes
		v.NbPortes = &n
		applied = true
	}
	if v.NbPlaces == nil && spec.NbPlaces != 0 {
		n := spec.NbPlaces
		v.NbPlaces = &n
		applied = true
	}
	if v.CoffreLitres == nil && spec.CoffreLitres != 0 {
		n := spec.CoffreLitres
		v.CoffreLitres = &n
		applied = true
	}

	return applied
}
