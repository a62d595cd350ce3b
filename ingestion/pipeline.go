package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/storage"
)

// embedBatchSize is the number of documents embedded per worker task.
const embedBatchSize = 16

// Pipeline embeds material documents and persists them to storage.
type Pipeline struct {
	repository storage.MaterialRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.MaterialRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		embedder:   provider.Embedder(),
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest embeds the rendered document of each record and stores the
// results. Embedding runs in batches across the worker pool; the call
// returns once every record is persisted or a batch has failed.
func (p *Pipeline) Ingest(ctx context.Context, records []*core.MaterialRecord) error {
	if len(records) == 0 {
		return nil
	}

	p.logger.Info("ingesting materials", "records", len(records))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(records); start += embedBatchSize {
		end := min(start+embedBatchSize, len(records))
		batch := records[start:end]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.embedBatch(ctx, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			return err
		}
	}

	wg.Wait()
	if firstErr != nil {
		p.logger.Error("ingestion failed", "err", firstErr)
		return firstErr
	}

	if _, err := p.repository.AddMaterials(ctx, records...); err != nil {
		return err
	}
	return nil
}

// embedBatch generates embeddings for one batch of records in place.
func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.MaterialRecord) error {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = core.RenderDocument(record).Content
	}

	p.logger.Debug("generating embeddings for materials", "records", len(texts))
	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
	}

	// Unit vectors so the store's dot-product similarity is cosine.
	for i := range embeddings {
		batch[i].Vector = core.NormalizeVector(embeddings[i])
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
