package retrieval

import "math"

const (
	// DefaultSemanticWeight is the default blend weight for semantic scores.
	DefaultSemanticWeight = 0.6

	// DefaultKeywordWeight is the default blend weight for keyword scores.
	DefaultKeywordWeight = 0.4

	// DefaultCandidateMultiplier controls how many candidates each channel
	// fetches relative to the requested result count.
	DefaultCandidateMultiplier = 3

	// weightSumTolerance absorbs floating point error when validating that
	// the weights sum to 1.0.
	weightSumTolerance = 1e-9
)

// Config holds the tuning parameters for hybrid retrieval.
type Config struct {
	// SemanticWeight is the blend weight applied to normalized semantic scores.
	SemanticWeight float64

	// KeywordWeight is the blend weight applied to normalized keyword scores.
	KeywordWeight float64

	// CandidateMultiplier is the over-fetch factor: each channel retrieves
	// up to CandidateMultiplier times the requested result count before
	// blending, so documents ranked highly by only one channel still
	// participate in the merge.
	CandidateMultiplier int
}

// DefaultConfig returns the standard retrieval configuration: a 60/40
// semantic/keyword blend with a 3x candidate over-fetch.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:      DefaultSemanticWeight,
		KeywordWeight:       DefaultKeywordWeight,
		CandidateMultiplier: DefaultCandidateMultiplier,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.SemanticWeight < 0 || c.KeywordWeight < 0 {
		return ErrInvalidWeights
	}
	if math.Abs(c.SemanticWeight+c.KeywordWeight-1.0) > weightSumTolerance {
		return ErrInvalidWeights
	}
	if c.CandidateMultiplier < 1 {
		return ErrInvalidCandidateMultiplier
	}
	return nil
}
