package core

import (
	"strings"
	"testing"
)

func sampleRecord() *MaterialRecord {
	return &MaterialRecord{
		Name:                "Aluminum 6061-T6",
		Category:            "Aluminum Alloy",
		Notes:               "General purpose structural alloy.",
		Density:             2.7,
		TensileUltimate:     310,
		TensileYield:        276,
		Modulus:             68.9,
		ThermalConductivity: 167,
		MeltingPoint:        582,
		CostPerKg:           2.5,
		SustainabilityScore: 8,
		Applications:        []string{"Aircraft fittings", "Bike frames"},
	}
}

func TestRenderDocument_Deterministic(t *testing.T) {
	record := sampleRecord()

	doc1 := RenderDocument(record)
	doc2 := RenderDocument(record)

	if doc1.Content != doc2.Content {
		t.Errorf("RenderDocument() content differs between calls")
	}
	if len(doc1.Metadata) != len(doc2.Metadata) {
		t.Errorf("RenderDocument() metadata differs between calls")
	}
}

func TestRenderDocument_Content(t *testing.T) {
	doc := RenderDocument(sampleRecord())

	for _, want := range []string{
		"Material: Aluminum 6061-T6",
		"Category: Aluminum Alloy",
		"- Density: 2.7 g/cc",
		"- Tensile Strength (Yield): 276 MPa",
		"- Cost: $2.5 per kg",
		"- Aircraft fittings",
	} {
		if !strings.Contains(doc.Content, want) {
			t.Errorf("RenderDocument() content missing %q", want)
		}
	}
}

func TestRenderDocument_Metadata(t *testing.T) {
	doc := RenderDocument(sampleRecord())

	if got := doc.Metadata[MetaSource]; got != "Aluminum 6061-T6" {
		t.Errorf("metadata source = %q, want material name", got)
	}
	if got := doc.Metadata[MetaCategory]; got != "Aluminum Alloy" {
		t.Errorf("metadata category = %q", got)
	}
	if got := doc.Metadata["density"]; got != "2.7" {
		t.Errorf("metadata density = %q, want 2.7", got)
	}
	if got := doc.Metadata["tensile_strength_yield"]; got != "276" {
		t.Errorf("metadata yield strength = %q, want 276", got)
	}
}

func TestRenderDocument_MissingValues(t *testing.T) {
	record := &MaterialRecord{Name: "Mystery Alloy"}
	doc := RenderDocument(record)

	if !strings.Contains(doc.Content, "Category: Unknown") {
		t.Errorf("missing category should render as Unknown")
	}
	if !strings.Contains(doc.Content, "- Density: N/A g/cc") {
		t.Errorf("unpublished density should render as N/A")
	}
	if _, ok := doc.Metadata["density"]; ok {
		t.Errorf("unpublished density should not appear in metadata")
	}
}
