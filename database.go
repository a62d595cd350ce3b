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


package helios

import (
	"context"
	"log/slog"

	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/ai/openai"
	"github.com/helios-eng/helios/assistant"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/ingestion"
	"github.com/helios-eng/helios/retrieval"
	"github.com/helios-eng/helios/storage"
	"github.com/helios-eng/helios/storage/badger"
)

// Database bundles the storage backend, repository, and AI provider that
// every Helios component builds on.
type Database struct {
	backend      *badger.Backend
	materialRepo storage.MaterialRepository
	provider     ai.AIProvider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider supplies an already constructed AI provider, bypassing
// the default OpenAI-compatible one. Used by tests.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory instead of on disk.
func WithInMemoryStorage() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the material store at filePath and wires the AI provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	materialRepo, err := badger.NewMaterialRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			materialRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		materialRepo: materialRepo,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.materialRepo.Close(); err != nil {
		db.logger.Error("error closing material repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) MaterialRepository() storage.MaterialRepository {
	return db.materialRepo
}

func (db *Database) AIProvider() ai.AIProvider {
	return db.provider
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.materialRepo, db.provider, opts...)
}

// NewRetriever builds a hybrid retriever over the stored materials. The
// keyword index is built from the documents currently in storage, so call
// this after ingestion.
func (db *Database) NewRetriever(ctx context.Context, opts ...retrieval.Option) (*retrieval.HybridRetriever, error) {
	semantic, err := retrieval.NewVectorIndex(db.materialRepo, db.provider.Embedder())
	if err != nil {
		return nil, err
	}

	records, err := db.materialRepo.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	documents := make([]*core.Document, len(records))
	for i, record := range records {
		documents[i] = core.RenderDocument(record)
	}
	keyword := retrieval.NewBM25Index(documents)

	return retrieval.NewHybridRetriever(semantic, keyword, opts...)
}

// NewAssistant builds an assistant over a fresh retriever.
func (db *Database) NewAssistant(ctx context.Context, retrieverOpts []retrieval.Option, opts ...assistant.Option) (*assistant.Assistant, error) {
	retriever, err := db.NewRetriever(ctx, retrieverOpts...)
	if err != nil {
		return nil, err
	}
	return assistant.NewAssistant(retriever, db.provider, opts...)
}
