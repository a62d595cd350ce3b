package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderDocument flattens a MaterialRecord into its Document view.
// The rendering is deterministic: the same record always produces the same
// content and metadata, which keeps the keyword and semantic indexes built
// over identical document sets.
func RenderDocument(record *MaterialRecord) *Document {
	var b strings.Builder

	fmt.Fprintf(&b, "Material: %s\n", record.Name)
	fmt.Fprintf(&b, "Category: %s\n\n", orUnknown(record.Category))
	fmt.Fprintf(&b, "Description: %s\n\n", orDefault(record.Notes, "No description available"))

	b.WriteString("Physical Properties:\n")
	fmt.Fprintf(&b, "- Density: %s g/cc\n", formatProperty(record.Density))

	b.WriteString("\nMechanical Properties:\n")
	fmt.Fprintf(&b, "- Tensile Strength (Ultimate): %s MPa\n", formatProperty(record.TensileUltimate))
	fmt.Fprintf(&b, "- Tensile Strength (Yield): %s MPa\n", formatProperty(record.TensileYield))
	fmt.Fprintf(&b, "- Modulus of Elasticity: %s GPa\n", formatProperty(record.Modulus))

	b.WriteString("\nThermal Properties:\n")
	fmt.Fprintf(&b, "- Thermal Conductivity: %s W/m-K\n", formatProperty(record.ThermalConductivity))
	fmt.Fprintf(&b, "- Melting Point: %s C\n", formatProperty(record.MeltingPoint))

	b.WriteString("\nEconomic Data:\n")
	fmt.Fprintf(&b, "- Cost: $%s per kg\n", formatProperty(record.CostPerKg))

	b.WriteString("\nSustainability:\n")
	fmt.Fprintf(&b, "- Score: %s/10\n", formatProperty(record.SustainabilityScore))
	fmt.Fprintf(&b, "- Notes: %s\n", orDefault(record.SustainabilityNotes, "No information available"))

	if len(record.Applications) > 0 {
		b.WriteString("\nCommon Applications:\n")
		for _, app := range record.Applications {
			fmt.Fprintf(&b, "- %s\n", app)
		}
	}

	metadata := map[string]string{
		MetaSource:   record.Name,
		MetaCategory: orUnknown(record.Category),
	}
	for key, value := range map[string]float64{
		"density":                   record.Density,
		"tensile_strength_ultimate": record.TensileUltimate,
		"tensile_strength_yield":    record.TensileYield,
		"modulus_of_elasticity":     record.Modulus,
		"thermal_conductivity":      record.ThermalConductivity,
		"melting_point":             record.MeltingPoint,
		"cost_per_kg_usd":           record.CostPerKg,
		"sustainability_score":      record.SustainabilityScore,
	} {
		if value != 0 {
			metadata[key] = strconv.FormatFloat(value, 'f', -1, 64)
		}
	}

	return &Document{
		Content:  b.String(),
		Metadata: metadata,
	}
}

// formatProperty renders a numeric property, using "N/A" for unpublished values.
func formatProperty(value float64) string {
	if value == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
