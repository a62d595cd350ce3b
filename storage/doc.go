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


// Package storage provides the storage abstraction layer for helios.
//
// This package defines the repository interface that decouples storage
// implementation from retrieval and serving logic, allowing different
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage.MaterialRepository
// interface to enforce abstraction:
//
//	repo, err := badger.NewMaterialRepository(backend)
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests use
// in-memory implementations without modification.
//
// # Thread Safety
//
// All repository implementations must be thread-safe. The materials corpus
// is written once at ingestion time and read-only afterwards, so concurrent
// query paths share the repository freely.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
