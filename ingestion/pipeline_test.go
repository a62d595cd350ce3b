package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-eng/helios/ai/mock"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/storage/badger"
)

func TestPipelineIngest(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	provider := mock.NewMockProvider()
	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	records, err := LoadDatabase([]byte(sampleDatabase))
	require.NoError(t, err)

	require.NoError(t, pipeline.Ingest(context.Background(), records))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := repo.GetMaterialByName(context.Background(), "Titanium Grade 5")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.Vector, "ingested material must carry an embedding")
}

func TestPipelineIngestEmbeddingFailure(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	boom := errors.New("embedding service down")
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
		return nil, boom
	}

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	records, err := LoadDatabase([]byte(sampleDatabase))
	require.NoError(t, err)

	err = pipeline.Ingest(context.Background(), records)
	assert.ErrorIs(t, err, boom)

	// Nothing is persisted when embedding fails.
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPipelineIngestEmpty(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	assert.NoError(t, pipeline.Ingest(context.Background(), nil))
}

func TestNewPipelineRequiredDependencies(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	_, err = NewPipeline(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewPipeline(repo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestPipelineIngestIsDeterministic(t *testing.T) {
	records, err := LoadDatabase([]byte(sampleDatabase))
	require.NoError(t, err)

	ids := make([]core.ID, len(records))
	for i, r := range records {
		ids[i] = core.IDFromContent(r.Name)
	}

	again, err := LoadDatabase([]byte(sampleDatabase))
	require.NoError(t, err)
	for i, r := range again {
		assert.Equal(t, ids[i], core.IDFromContent(r.Name))
	}
}

func TestPipelineIngestNormalizesEmbeddings(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	// Aluminum gets a large vector with low cosine similarity to the query,
	// Titanium a small one pointing almost straight at it. Without unit
	// vectors the store's dot product would rank Aluminum first on sheer
	// magnitude.
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		vectors := [][]float32{
			{2, 8, 0},
			{0.9, 0.435, 0},
		}
		return vectors[:len(texts)], nil
	}

	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	records, err := LoadDatabase([]byte(sampleDatabase))
	require.NoError(t, err)
	require.NoError(t, pipeline.Ingest(context.Background(), records))

	for _, name := range []string{"Aluminum 6061-T6", "Titanium Grade 5"} {
		stored, err := repo.GetMaterialByName(context.Background(), name)
		require.NoError(t, err)
		var magnitude float64
		for _, v := range stored.Vector {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, magnitude, 1e-6, "stored vector for %s must be unit length", name)
	}

	matches, err := repo.FindSimilar(context.Background(), []float32{1, 0, 0}, 0, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Titanium Grade 5", matches[0].Document.Source())
	assert.InDelta(t, 0.900, matches[0].Score, 1e-3)
	assert.Equal(t, "Aluminum 6061-T6", matches[1].Document.Source())
	assert.InDelta(t, 0.243, matches[1].Score, 1e-3)
}
