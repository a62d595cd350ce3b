// Copyright 2025 Helios Engineering
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/helios-eng/helios/core"
)

// HybridRetriever blends semantic and keyword search results into a single
// ranked list.
type HybridRetriever struct {
	semantic SemanticIndex
	keyword  KeywordIndex
	config   Config
	logger   *slog.Logger
}

// Option configures a HybridRetriever.
type Option func(*HybridRetriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *HybridRetriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConfig overrides the retrieval configuration.
// Default is DefaultConfig().
func WithConfig(config Config) Option {
	return func(r *HybridRetriever) error {
		if err := config.Validate(); err != nil {
			return err
		}
		r.config = config
		return nil
	}
}

// NewHybridRetriever creates a new hybrid retriever over the given indexes.
func NewHybridRetriever(semantic SemanticIndex, keyword KeywordIndex, opts ...Option) (*HybridRetriever, error) {
	if semantic == nil {
		return nil, ErrSemanticIndexRequired
	}
	if keyword == nil {
		return nil, ErrKeywordIndexRequired
	}

	r := &HybridRetriever{
		semantic: semantic,
		keyword:  keyword,
		config:   DefaultConfig(),
		logger:   slog.Default().With("component", "hybrid_retriever"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// candidate accumulates the blended score and provenance of one document
// during the merge.
type candidate struct {
	document    *core.Document
	score       float64
	semanticPos int
	keywordPos  int
}

// Retrieve runs both channels, blends their normalized scores, and returns
// up to maxHits results ranked by blended score. A query naming a material
// verbatim has that material's document promoted to the front regardless
// of its blended score.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, maxHits int) ([]core.ScoredResult, error) {
	return r.RetrieveWithMonitor(ctx, query, maxHits, nil)
}

// RetrieveWithMonitor is Retrieve with per-stage observation callbacks.
func (r *HybridRetriever) RetrieveWithMonitor(ctx context.Context, query string, maxHits int, monitor RetrievalMonitor) ([]core.ScoredResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if maxHits <= 0 {
		return nil, nil
	}

	monitor.Start(query)

	// Over-fetch so documents ranked highly by only one channel still
	// make it into the blend.
	fetch := maxHits * r.config.CandidateMultiplier

	var semanticResults, keywordResults []core.ScoredResult
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		results, err := r.semantic.Search(groupCtx, query, fetch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSemanticSearch, err)
		}
		semanticResults = results
		return nil
	})
	group.Go(func() error {
		results, err := r.keyword.Search(groupCtx, query, fetch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrKeywordSearch, err)
		}
		keywordResults = results
		return nil
	})
	if err := group.Wait(); err != nil {
		r.logger.Error("hybrid retrieval failed", "query", query, "err", err)
		return nil, err
	}

	monitor.AfterSemanticSearch(semanticResults)
	monitor.AfterKeywordSearch(keywordResults)

	// Normalize each channel independently so the weights compare like
	// with like.
	normalizeScores(semanticResults)
	normalizeScores(keywordResults)

	// Merge by source. A document found by both channels gets the full
	// weighted sum; one channel only contributes its own weighted share.
	merged := make(map[string]*candidate)
	order := make([]string, 0, len(semanticResults)+len(keywordResults))

	for i, result := range semanticResults {
		source := result.Document.Source()
		merged[source] = &candidate{
			document:    result.Document,
			score:       r.config.SemanticWeight * result.Score,
			semanticPos: i,
			keywordPos:  -1,
		}
		order = append(order, source)
	}
	for i, result := range keywordResults {
		source := result.Document.Source()
		if existing, ok := merged[source]; ok {
			existing.score += r.config.KeywordWeight * result.Score
			existing.keywordPos = i
			continue
		}
		merged[source] = &candidate{
			document:    result.Document,
			score:       r.config.KeywordWeight * result.Score,
			semanticPos: -1,
			keywordPos:  i,
		}
		order = append(order, source)
	}

	candidates := make([]*candidate, 0, len(order))
	for _, source := range order {
		candidates = append(candidates, merged[source])
	}

	// Rank by blended score; break ties by semantic then keyword channel
	// position so ordering is deterministic.
	slices.SortStableFunc(candidates, func(a, b *candidate) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		if c := comparePositions(a.semanticPos, b.semanticPos); c != 0 {
			return c
		}
		return comparePositions(a.keywordPos, b.keywordPos)
	})

	// Promote documents whose material name appears verbatim in the
	// query. A user asking about a specific material by name expects
	// that material first, whatever the blend says.
	loweredQuery := strings.ToLower(query)
	promoted := make([]*candidate, 0, len(candidates))
	rest := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		source := c.document.Source()
		if source != "" && strings.Contains(loweredQuery, strings.ToLower(source)) {
			monitor.ExactMatchPromoted(source)
			promoted = append(promoted, c)
			continue
		}
		rest = append(rest, c)
	}
	candidates = append(promoted, rest...)

	if len(candidates) > maxHits {
		candidates = candidates[:maxHits]
	}

	results := make([]core.ScoredResult, len(candidates))
	for i, c := range candidates {
		results[i] = core.ScoredResult{Document: c.document, Score: c.score}
	}

	monitor.Finish(results)
	r.logger.Debug("hybrid retrieval complete",
		"query", query,
		"semantic_hits", len(semanticResults),
		"keyword_hits", len(keywordResults),
		"results", len(results))

	return results, nil
}

// comparePositions orders channel positions ascending, with absent entries
// (position -1) last.
func comparePositions(a, b int) int {
	if a == b {
		return 0
	}
	if a == -1 {
		return 1
	}
	if b == -1 {
		return -1
	}
	if a < b {
		return -1
	}
	return 1
}

// RetrieveSemanticOnly runs only the semantic channel.
func (r *HybridRetriever) RetrieveSemanticOnly(ctx context.Context, query string, maxHits int) ([]core.ScoredResult, error) {
	if maxHits <= 0 {
		return nil, nil
	}
	results, err := r.semantic.Search(ctx, query, maxHits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSemanticSearch, err)
	}
	return results, nil
}

// RetrieveKeywordOnly runs only the keyword channel.
func (r *HybridRetriever) RetrieveKeywordOnly(ctx context.Context, query string, maxHits int) ([]core.ScoredResult, error) {
	if maxHits <= 0 {
		return nil, nil
	}
	results, err := r.keyword.Search(ctx, query, maxHits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeywordSearch, err)
	}
	return results, nil
}

// Comparison reports what each retrieval method returns for the same query,
// identified by document source.
type Comparison struct {
	Semantic []string `json:"semantic"`
	Keyword  []string `json:"keyword"`
	Hybrid   []string `json:"hybrid"`
}

// Compare runs all three retrieval methods side by side. Useful for
// inspecting how the blend changes the ranking.
func (r *HybridRetriever) Compare(ctx context.Context, query string, maxHits int) (*Comparison, error) {
	semantic, err := r.RetrieveSemanticOnly(ctx, query, maxHits)
	if err != nil {
		return nil, err
	}
	keyword, err := r.RetrieveKeywordOnly(ctx, query, maxHits)
	if err != nil {
		return nil, err
	}
	hybrid, err := r.Retrieve(ctx, query, maxHits)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Semantic: sources(semantic),
		Keyword:  sources(keyword),
		Hybrid:   sources(hybrid),
	}, nil
}

func sources(results []core.ScoredResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Document.Source()
	}
	return out
}
