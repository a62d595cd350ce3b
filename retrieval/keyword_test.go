package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helios-eng/helios/core"
)

func materialDoc(name, content string) *core.Document {
	return &core.Document{
		Content: content,
		Metadata: map[string]string{
			core.MetaSource: name,
		},
	}
}

func testCorpus() []*core.Document {
	return []*core.Document{
		materialDoc("Aluminum 6061-T6", "Material: Aluminum 6061-T6 Category: Metal lightweight aluminum alloy aerospace frames"),
		materialDoc("Titanium Grade 5", "Material: Titanium Grade 5 Category: Metal titanium alloy high strength aerospace implants"),
		materialDoc("PEEK", "Material: PEEK Category: Polymer thermoplastic high temperature chemical resistance"),
		materialDoc("Oak Wood", "Material: Oak Wood Category: Wood hardwood furniture flooring"),
	}
}

func TestBM25IndexSearch(t *testing.T) {
	index := NewBM25Index(testCorpus())
	require.Equal(t, 4, index.Len())

	results, err := index.Search(context.Background(), "titanium alloy", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// The titanium document mentions both query terms and must rank first.
	assert.Equal(t, "Titanium Grade 5", results[0].Document.Source())

	// Documents matching no query term are excluded.
	for _, r := range results {
		assert.NotEqual(t, "Oak Wood", r.Document.Source())
		assert.NotEqual(t, "PEEK", r.Document.Source())
	}
}

func TestBM25IndexScoresDescending(t *testing.T) {
	index := NewBM25Index(testCorpus())

	results, err := index.Search(context.Background(), "aerospace alloy metal", 10)
	require.NoError(t, err)
	require.True(t, len(results) >= 2)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestBM25IndexLimit(t *testing.T) {
	index := NewBM25Index(testCorpus())

	results, err := index.Search(context.Background(), "material category", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestBM25IndexNoMatch(t *testing.T) {
	index := NewBM25Index(testCorpus())

	results, err := index.Search(context.Background(), "quantum entanglement", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBM25IndexEmptyQuery(t *testing.T) {
	index := NewBM25Index(testCorpus())

	results, err := index.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBM25IndexEmptyCorpus(t *testing.T) {
	index := NewBM25Index(nil)
	assert.Equal(t, 0, index.Len())

	results, err := index.Search(context.Background(), "titanium", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBM25IndexRebuild(t *testing.T) {
	index := NewBM25Index(testCorpus())
	require.Equal(t, 4, index.Len())

	index.Rebuild([]*core.Document{
		materialDoc("Copper C110", "Material: Copper C110 Category: Metal electrical conductor"),
	})
	assert.Equal(t, 1, index.Len())

	results, err := index.Search(context.Background(), "copper conductor", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Copper C110", results[0].Document.Source())
}

func TestBM25IndexNonNegativeIDF(t *testing.T) {
	// "metal" appears in every document; with the Lucene IDF variant its
	// contribution stays non-negative instead of flipping the ranking.
	docs := []*core.Document{
		materialDoc("A", "metal metal metal"),
		materialDoc("B", "metal"),
		materialDoc("C", "metal plastic"),
	}
	index := NewBM25Index(docs)

	results, err := index.Search(context.Background(), "metal", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestBM25IndexCancelledContext(t *testing.T) {
	index := NewBM25Index(testCorpus())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := index.Search(ctx, "titanium", 10)
	assert.Error(t, err)
}
