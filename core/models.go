package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated deterministically from the material name.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MaterialRecord is a single engineering material from the materials database.
// Records are created once at ingestion time and read-only thereafter.
// A numeric property of 0 means the datasheet did not publish a value;
// it renders as "N/A" in the derived document.
type MaterialRecord struct {
	Id                  ID
	Name                string
	Category            string
	Notes               string
	Density             float64 // g/cc
	TensileUltimate     float64 // MPa
	TensileYield        float64 // MPa
	Modulus             float64 // GPa
	ThermalConductivity float64 // W/m-K
	MeltingPoint        float64 // Celsius
	CostPerKg           float64 // USD
	SustainabilityScore float64 // 0-10
	SustainabilityNotes string
	Applications        []string
	Vector              []float32 // Embedding of the rendered document (populated by the pipeline)
	InsertedAt          time.Time
	UpdatedAt           time.Time
}

// Document is an immutable textual view of a MaterialRecord: a flattened
// content blob plus a metadata map. The "source" metadata key holds the
// material name and is the identity used for deduplication.
type Document struct {
	Content  string
	Metadata map[string]string
}

// Source returns the material name this document was derived from.
func (d *Document) Source() string {
	return d.Metadata[MetaSource]
}

// Metadata keys attached to every rendered Document.
const (
	MetaSource   = "source"
	MetaCategory = "category"
)

// ScoredResult pairs a document with a relevance score.
// Produced transiently per query, never persisted.
type ScoredResult struct {
	Document *Document
	Score    float64
}
