package retrieval

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

func TestNewVectorIndexRequiredDependencies(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	_, err := NewVectorIndex(nil, embedder)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	_, err = NewVectorIndex(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestVectorIndexSearch(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	records := []*core.MaterialRecord{
		{Name: "Aluminum 6061-T6", Category: "Metal", Vector: []float32{1, 0, 0}},
		{Name: "Titanium Grade 5", Category: "Metal", Vector: []float32{0.9, 0.1, 0}},
		{Name: "Oak Wood", Category: "Wood", Vector: []float32{0, 0, 1}},
	}
	_, err = repo.AddMaterials(context.Background(), records...)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	index, err := NewVectorIndex(repo, embedder)
	require.NoError(t, err)

	results, err := index.Search(context.Background(), "lightweight metal", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Aluminum 6061-T6", results[0].Document.Source())
	assert.Equal(t, "Titanium Grade 5", results[1].Document.Source())
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestVectorIndexEmbeddingFailure(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	boom := errors.New("embedding service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return nil, boom
	}

	index, err := NewVectorIndex(repo, embedder)
	require.NoError(t, err)

	_, err = index.Search(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, boom)
}
