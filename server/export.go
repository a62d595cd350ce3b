package server

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/helios-eng/helios/core"
)

// exportFormats maps format names to MIME types.
var exportFormats = map[string]string{
	"json": "application/json",
	"csv":  "text/csv",
	"txt":  "text/plain",
}

// materialProperties flattens a record into ordered label/value pairs for
// the csv and txt exports.
func materialProperties(record *core.MaterialRecord) [][2]string {
	props := [][2]string{
		{"Name", record.Name},
		{"Category", record.Category},
		{"Notes", record.Notes},
		{"Density (g/cc)", formatExportValue(record.Density)},
		{"Tensile Strength Ultimate (MPa)", formatExportValue(record.TensileUltimate)},
		{"Tensile Strength Yield (MPa)", formatExportValue(record.TensileYield)},
		{"Modulus of Elasticity (GPa)", formatExportValue(record.Modulus)},
		{"Thermal Conductivity (W/m-K)", formatExportValue(record.ThermalConductivity)},
		{"Melting Point (C)", formatExportValue(record.MeltingPoint)},
		{"Cost (USD/kg)", formatExportValue(record.CostPerKg)},
		{"Sustainability Score", formatExportValue(record.SustainabilityScore)},
		{"Sustainability Notes", record.SustainabilityNotes},
	}
	if len(record.Applications) > 0 {
		props = append(props, [2]string{"Common Applications", strings.Join(record.Applications, "; ")})
	}
	return props
}

func formatExportValue(value float64) string {
	if value == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// renderExport serializes one material in the requested format.
func renderExport(record *core.MaterialRecord, format string) (content []byte, mediaType string, err error) {
	mediaType, ok := exportFormats[format]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	switch format {
	case "json":
		content, err = json.MarshalIndent(exportRecord(record), "", "  ")
		if err != nil {
			return nil, "", err
		}
	case "csv":
		var sb strings.Builder
		w := csv.NewWriter(&sb)
		if err := w.Write([]string{"Property", "Value"}); err != nil {
			return nil, "", err
		}
		for _, prop := range materialProperties(record) {
			if err := w.Write([]string{prop[0], prop[1]}); err != nil {
				return nil, "", err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		content = []byte(sb.String())
	case "txt":
		var sb strings.Builder
		for _, prop := range materialProperties(record) {
			sb.WriteString(prop[0])
			sb.WriteString(": ")
			sb.WriteString(prop[1])
			sb.WriteString("\n")
		}
		content = []byte(sb.String())
	}

	return content, mediaType, nil
}

// exportRecord is the JSON export shape, mirroring the materials database
// field names.
func exportRecord(record *core.MaterialRecord) map[string]any {
	out := map[string]any{
		"name":                 record.Name,
		"category":             record.Category,
		"material_notes":       record.Notes,
		"sustainability_notes": record.SustainabilityNotes,
	}
	numeric := map[string]float64{
		"density":                   record.Density,
		"tensile_strength_ultimate": record.TensileUltimate,
		"tensile_strength_yield":    record.TensileYield,
		"modulus_of_elasticity":     record.Modulus,
		"thermal_conductivity":      record.ThermalConductivity,
		"melting_point":             record.MeltingPoint,
		"cost_per_kg_usd":           record.CostPerKg,
		"sustainability_score":      record.SustainabilityScore,
	}
	for key, value := range numeric {
		if value != 0 {
			out[key] = value
		}
	}
	if len(record.Applications) > 0 {
		out["common_applications"] = record.Applications
	}
	return out
}
