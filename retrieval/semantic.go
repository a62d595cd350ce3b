package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/storage"
)

// SemanticIndex scores documents against a query by embedding similarity.
type SemanticIndex interface {
	// Search returns up to limit documents scored against the query,
	// ordered by descending similarity. An empty result is not an error.
	Search(ctx context.Context, query string, limit int) ([]core.ScoredResult, error)
}

// VectorIndex is a SemanticIndex backed by a material repository holding
// precomputed embeddings. Queries are embedded on demand and matched by
// cosine similarity.
type VectorIndex struct {
	repository storage.MaterialRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

var _ SemanticIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a semantic index over the given repository.
func NewVectorIndex(repository storage.MaterialRepository, embedder ai.Embedder) (*VectorIndex, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &VectorIndex{
		repository: repository,
		embedder:   embedder,
		logger:     slog.Default().With("component", "vector_index"),
	}, nil
}

// Search embeds the query and returns the closest documents by cosine
// similarity. Documents with no positive similarity are excluded; no
// further floor is applied.
func (v *VectorIndex) Search(ctx context.Context, query string, limit int) ([]core.ScoredResult, error) {
	embedding, err := v.embedder.EmbedText(ctx, query)
	if err != nil {
		v.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := v.repository.FindSimilar(ctx, embedding, 0, limit)
	if err != nil {
		v.logger.Error("error querying for similar materials", "err", err)
		return nil, err
	}
	return matches, nil
}
