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

import "errors"

var (
	// ErrSemanticIndexRequired is returned when a semantic index is not provided.
	ErrSemanticIndexRequired = errors.New("semantic index required")

	// ErrKeywordIndexRequired is returned when a keyword index is not provided.
	ErrKeywordIndexRequired = errors.New("keyword index required")

	// ErrRepositoryRequired is returned when a material repository is not provided.
	ErrRepositoryRequired = errors.New("material repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidWeights is returned when the retrieval weights do not form a
	// valid convex combination.
	ErrInvalidWeights = errors.New("retrieval weights must be non-negative and sum to 1.0")

	// ErrInvalidCandidateMultiplier is returned when the candidate over-fetch
	// multiplier is less than 1.
	ErrInvalidCandidateMultiplier = errors.New("candidate multiplier must be at least 1")

	// ErrSemanticSearch is returned when the semantic retrieval channel fails.
	ErrSemanticSearch = errors.New("semantic search failed")

	// ErrKeywordSearch is returned when the keyword retrieval channel fails.
	ErrKeywordSearch = errors.New("keyword search failed")
)
