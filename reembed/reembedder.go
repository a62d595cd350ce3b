package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of materials embedded per API call.
	BatchSize int

	// MaxRetries is the maximum number of attempts per embedding call.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:  32,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Reembedder regenerates the embeddings of every stored material.
type Reembedder struct {
	repo     storage.MaterialRepository
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.MaterialRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		repo:     repo,
		embedder: embedder,
		config:   config,
		progress: progress,
	}, nil
}

// Run reembeds every material in the store with the configured embedder,
// batch by batch. Each batch is persisted before the next is embedded, so
// an interrupted run leaves a mix of old and new vectors but never a
// half-written record.
func (r *Reembedder) Run(ctx context.Context) error {
	records, err := r.repo.ListMaterials(ctx)
	if err != nil {
		return fmt.Errorf("failed to list materials: %w", err)
	}

	total := len(records)
	if total == 0 {
		fmt.Fprintf(r.progress, "No materials found in database\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Reembedding %d materials (batch size: %d)\n", total, r.config.BatchSize)
	start := time.Now()

	processed := 0
	for begin := 0; begin < total; begin += r.config.BatchSize {
		end := min(begin+r.config.BatchSize, total)
		batch := records[begin:end]

		if err := r.processBatch(ctx, batch); err != nil {
			return err
		}

		processed += len(batch)
		fmt.Fprintf(r.progress, "  %d/%d materials reembedded\n", processed, total)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d materials in %v\n",
		total, elapsed.Round(time.Second))
	return nil
}

// processBatch embeds one batch of materials and writes the vectors back.
func (r *Reembedder) processBatch(ctx context.Context, batch []*core.MaterialRecord) error {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = core.RenderDocument(record).Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.config.MaxRetries, err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	for i, record := range batch {
		record.Vector = core.NormalizeVector(embeddings[i])
	}

	if _, err := r.repo.UpdateMaterials(ctx, batch...); err != nil {
		return fmt.Errorf("failed to update materials: %w", err)
	}
	return nil
}
