package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-eng/helios/ai/mock"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/storage/badger"
)

func TestReembedderRun(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	ctx := context.Background()
	_, err = repo.AddMaterials(ctx,
		&core.MaterialRecord{Name: "Titanium Grade 5", Category: "Metal", Vector: []float32{1, 0}},
		&core.MaterialRecord{Name: "Oak Wood", Category: "Wood", Vector: []float32{0, 1}},
	)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{3, 4}
		}
		return out, nil
	}

	var progress bytes.Buffer
	r, err := NewReembedder(repo, embedder, nil, &progress)
	require.NoError(t, err)

	require.NoError(t, r.Run(ctx))

	record, err := repo.GetMaterialByName(ctx, "Titanium Grade 5")
	require.NoError(t, err)
	require.NotNil(t, record)
	// New vectors are unit-normalized before storage.
	assert.InDelta(t, 0.6, record.Vector[0], 1e-6)
	assert.InDelta(t, 0.8, record.Vector[1], 1e-6)

	assert.Contains(t, progress.String(), "Reembedding complete")
}

func TestReembedderRunEmpty(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	var progress bytes.Buffer
	r, err := NewReembedder(repo, mock.NewMockEmbedder(), nil, &progress)
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, progress.String(), "No materials")
}

func TestReembedderRetriesEmbedding(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	ctx := context.Background()
	_, err = repo.AddMaterials(ctx, &core.MaterialRecord{Name: "PEEK", Category: "Polymer"})
	require.NoError(t, err)

	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1}
		}
		return out, nil
	}

	config := &Config{BatchSize: 10, MaxRetries: 3, RetryDelay: time.Millisecond}
	r, err := NewReembedder(repo, embedder, config, nil)
	require.NoError(t, err)

	require.NoError(t, r.Run(ctx))
	assert.Equal(t, 2, calls)
}

func TestNewReembedderRequiredDependencies(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	_, err = NewReembedder(nil, mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewReembedder(repo, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
