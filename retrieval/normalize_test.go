package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helios-eng/helios/core"
)

func scored(scores ...float64) []core.ScoredResult {
	results := make([]core.ScoredResult, len(scores))
	for i, s := range scores {
		results[i] = core.ScoredResult{
			Document: &core.Document{Content: "doc"},
			Score:    s,
		}
	}
	return results
}

func extractScores(results []core.ScoredResult) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Score
	}
	return out
}

func TestNormalizeScores(t *testing.T) {
	results := scored(2.0, 5.0, 8.0)
	normalizeScores(results)
	assert.Equal(t, []float64{0.0, 0.5, 1.0}, extractScores(results))
}

func TestNormalizeScoresSingleResult(t *testing.T) {
	results := scored(0.42)
	normalizeScores(results)
	assert.Equal(t, []float64{1.0}, extractScores(results))
}

func TestNormalizeScoresAllEqual(t *testing.T) {
	results := scored(3.3, 3.3, 3.3)
	normalizeScores(results)
	assert.Equal(t, []float64{1.0, 1.0, 1.0}, extractScores(results))
}

func TestNormalizeScoresEmpty(t *testing.T) {
	results := scored()
	normalizeScores(results)
	assert.Empty(t, results)
}

func TestNormalizeScoresBoundsPreserved(t *testing.T) {
	results := scored(0.1, 0.9, 0.5, 0.3)
	normalizeScores(results)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}
