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


// Package reembed regenerates the stored embeddings of every material.
//
// Switching embedding models invalidates every stored vector; the
// Reembedder walks the material store in batches, embeds each record's
// rendered document with the new model, and writes the vectors back.
// Embedding calls are retried with exponential backoff and progress is
// reported to a writer.
package reembed
