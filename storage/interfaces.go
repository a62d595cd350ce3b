package storage

import (
	"context"

	"github.com/helios-eng/helios/core"
)

// MaterialRepository provides operations for managing material records.
// Implementations must be thread-safe and support concurrent access; after
// ingestion completes the repository is only ever read, so concurrent
// queries share it without synchronization.
type MaterialRepository interface {
	// AddMaterials adds one or more material records to storage.
	// For records with ID=0, assigns the content-based ID of the name.
	// Sets InsertedAt timestamp if not already set.
	// Returns the records with IDs and timestamps populated.
	AddMaterials(ctx context.Context, records ...*core.MaterialRecord) ([]*core.MaterialRecord, error)

	// UpdateMaterials updates existing material records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateMaterials(ctx context.Context, records ...*core.MaterialRecord) ([]*core.MaterialRecord, error)

	// GetMaterial retrieves a single material record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetMaterial(ctx context.Context, id core.ID) (*core.MaterialRecord, error)

	// GetMaterialByName retrieves a material record by its unique name.
	// Returns ErrNotFound if no record with that name exists.
	GetMaterialByName(ctx context.Context, name string) (*core.MaterialRecord, error)

	// ListMaterials retrieves all material records, ordered by name.
	ListMaterials(ctx context.Context) ([]*core.MaterialRecord, error)

	// Count returns the number of stored material records.
	Count(ctx context.Context) (int, error)

	// FindSimilar finds documents whose stored vectors are similar to the
	// given vector. Returns results with similarity >= minSimilarity, up to
	// limit results, ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.ScoredResult, error)

	// Close closes the repository and releases resources.
	Close() error
}
