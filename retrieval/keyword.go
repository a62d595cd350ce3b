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
	"math"
	"slices"
	"sync"

	"github.com/helios-eng/helios/core"
)

// BM25 parameters. Standard Okapi values.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// KeywordIndex scores documents against a query using keyword matching.
type KeywordIndex interface {
	// Search returns up to limit documents scored against the query,
	// ordered by descending score. Documents that match no query term
	// are excluded. An empty result is not an error.
	Search(ctx context.Context, query string, limit int) ([]core.ScoredResult, error)

	// Len reports the number of indexed documents.
	Len() int
}

// indexedDoc holds the per-document statistics needed at query time.
type indexedDoc struct {
	document  *core.Document
	termFreqs map[string]int
	length    int
}

// BM25Index is an in-memory keyword index using Okapi BM25 scoring with a
// non-negative IDF. The index is immutable after construction, so reads
// need no coordination; the mutex only guards Rebuild.
type BM25Index struct {
	mu        sync.RWMutex
	docs      []indexedDoc
	docFreqs  map[string]int
	avgLength float64
}

var _ KeywordIndex = (*BM25Index)(nil)

// NewBM25Index builds a keyword index over the given documents.
func NewBM25Index(documents []*core.Document) *BM25Index {
	idx := &BM25Index{}
	idx.build(documents)
	return idx
}

// Rebuild replaces the index contents with a fresh document set.
func (idx *BM25Index) Rebuild(documents []*core.Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.build(documents)
}

func (idx *BM25Index) build(documents []*core.Document) {
	idx.docs = make([]indexedDoc, 0, len(documents))
	idx.docFreqs = make(map[string]int)

	totalLength := 0
	for _, doc := range documents {
		terms := tokenize(doc.Content)
		freqs := make(map[string]int, len(terms))
		for _, term := range terms {
			freqs[term]++
		}
		for term := range freqs {
			idx.docFreqs[term]++
		}
		totalLength += len(terms)
		idx.docs = append(idx.docs, indexedDoc{
			document:  doc,
			termFreqs: freqs,
			length:    len(terms),
		})
	}

	idx.avgLength = 0
	if len(idx.docs) > 0 {
		idx.avgLength = float64(totalLength) / float64(len(idx.docs))
	}
}

// Len reports the number of indexed documents.
func (idx *BM25Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Search scores every indexed document against the query and returns the
// top matches. Only documents sharing at least one term with the query are
// returned.
func (idx *BM25Index) Search(ctx context.Context, query string, limit int) ([]core.ScoredResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	queryTerms := tokenize(query)
	if len(queryTerms) == 0 || len(idx.docs) == 0 {
		return nil, nil
	}

	n := float64(len(idx.docs))
	results := make([]core.ScoredResult, 0, limit)

	for i := range idx.docs {
		doc := &idx.docs[i]
		score := 0.0
		for _, term := range queryTerms {
			tf := float64(doc.termFreqs[term])
			if tf == 0 {
				continue
			}
			df := float64(idx.docFreqs[term])
			// Lucene variant: ln(1 + (N - df + 0.5) / (df + 0.5)),
			// never negative even when a term appears in most documents.
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := 1 - bm25B + bm25B*float64(doc.length)/idx.avgLength
			score += idf * tf * (bm25K1 + 1) / (tf + bm25K1*norm)
		}
		if score > 0 {
			results = append(results, core.ScoredResult{
				Document: doc.document,
				Score:    score,
			})
		}
	}

	slices.SortStableFunc(results, func(a, b core.ScoredResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
