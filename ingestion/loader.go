package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/helios-eng/helios/core"
)

// materialEntry mirrors one value of the materials database JSON object.
// The database is keyed by material name; omitted numeric properties stay
// zero and render as "N/A".
type materialEntry struct {
	Category            string   `json:"category"`
	MaterialNotes       string   `json:"material_notes"`
	Density             float64  `json:"density"`
	TensileUltimate     float64  `json:"tensile_strength_ultimate"`
	TensileYield        float64  `json:"tensile_strength_yield"`
	Modulus             float64  `json:"modulus_of_elasticity"`
	ThermalConductivity float64  `json:"thermal_conductivity"`
	MeltingPoint        float64  `json:"melting_point"`
	CostPerKg           float64  `json:"cost_per_kg_usd"`
	SustainabilityScore float64  `json:"sustainability_score"`
	SustainabilityNotes string   `json:"sustainability_notes"`
	Applications        []string `json:"common_applications"`
}

// LoadDatabaseFile reads a materials database JSON file and returns
// validated records sorted by material name.
func LoadDatabaseFile(path string) ([]*core.MaterialRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading materials database: %w", err)
	}
	return LoadDatabase(data)
}

// LoadDatabase parses materials database JSON, an object keyed by material
// name. Records are validated and returned sorted by name so ingestion is
// deterministic.
func LoadDatabase(data []byte) ([]*core.MaterialRecord, error) {
	var entries map[string]materialEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDatabase, err)
	}
	if len(entries) == 0 {
		return nil, ErrDatabaseFileEmpty
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]*core.MaterialRecord, 0, len(entries))
	for _, name := range names {
		entry := entries[name]
		record := &core.MaterialRecord{
			Name:                name,
			Category:            entry.Category,
			Notes:               entry.MaterialNotes,
			Density:             entry.Density,
			TensileUltimate:     entry.TensileUltimate,
			TensileYield:        entry.TensileYield,
			Modulus:             entry.Modulus,
			ThermalConductivity: entry.ThermalConductivity,
			MeltingPoint:        entry.MeltingPoint,
			CostPerKg:           entry.CostPerKg,
			SustainabilityScore: entry.SustainabilityScore,
			SustainabilityNotes: entry.SustainabilityNotes,
			Applications:        entry.Applications,
		}
		if err := core.ValidateMaterialRecord(record); err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		records = append(records, record)
	}

	return records, nil
}
