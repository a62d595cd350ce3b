package mock

import (
	"context"
	"hash/fnv"

	"github.com/helios-eng/helios/core"
)

const mockEmbeddingDim = 384

// MockEmbedder is a test double for ai.Embedder. With no func fields set it
// produces a deterministic unit vector derived from the text, so ranking
// tests get stable similarities without an embedding service.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with the deterministic default
// behavior. Returns the concrete type so tests can set func fields and
// inspect CallCount.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText returns the deterministic embedding for text, or delegates to
// EmbedTextFunc when set.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return deterministicEmbedding(text), nil
}

// EmbedTexts returns one deterministic embedding per input text, or
// delegates to EmbedTextsFunc when set.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = deterministicEmbedding(text)
	}
	return embeddings, nil
}

// CallCount returns the number of times any embedding method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// deterministicEmbedding derives a unit vector from the text: an FNV hash
// seeds a linear congruential generator that fills the components, and the
// result is normalized so stored-vector dot products behave like cosine
// similarity, matching what the ingestion pipeline persists.
func deterministicEmbedding(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, mockEmbeddingDim)
	for i := range vector {
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%1000) / 1000.0
	}
	return core.NormalizeVector(vector)
}
