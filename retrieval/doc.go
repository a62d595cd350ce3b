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


// Package retrieval provides hybrid semantic and keyword search over
// material documents.
//
// The HybridRetriever type combines two independent retrieval channels:
//   - Semantic search using vector embeddings and cosine similarity
//   - Keyword search using BM25 term scoring
//
// Scores from both channels are min-max normalized onto [0, 1] and blended
// with configurable weights. Documents whose material name exactly matches
// a name mentioned in the query are promoted to the front of the results.
package retrieval
