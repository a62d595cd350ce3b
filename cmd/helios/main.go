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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	helios "github.com/helios-eng/helios"
	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/assistant"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/ingestion"
	"github.com/helios-eng/helios/reembed"
	"github.com/helios-eng/helios/retrieval"
	"github.com/helios-eng/helios/server"
)

func main() {
	app := &cli.App{
		Name:  "helios",
		Usage: "Engineering materials assistant with hybrid retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load the materials database, embed documents, and store them",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Path to materials database JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for embedding",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Start the assistant HTTP server",
				Action: serveCommand,
				Flags: append(commonAIFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "listen",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8000",
					},
					&cli.Float64Flag{
						Name:  "semantic-weight",
						Usage: "Blend weight for semantic scores",
						Value: retrieval.DefaultSemanticWeight,
					},
					&cli.Float64Flag{
						Name:  "keyword-weight",
						Usage: "Blend weight for keyword scores",
						Value: retrieval.DefaultKeywordWeight,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Documents retrieved per question",
						Value: assistant.DefaultTopK,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate all material embeddings with a new model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of materials to embed per API call",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a one-off retrieval query against the database",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(commonAIFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Retrieval mode (hybrid, semantic, keyword, compare)",
						Value: "hybrid",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results",
						Value: assistant.DefaultTopK,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonAIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "ai-token",
			Usage: "API token for the AI service",
			Value: "none",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithToken(c.String("ai-token")),
	)
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := ingestion.LoadDatabaseFile(c.String("data"))
	if err != nil {
		return fmt.Errorf("failed to load materials database: %w", err)
	}
	slog.Info("loaded materials database", "materials", len(records))

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	db, err := helios.NewDatabase(c.String("db"), helios.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var pipelineOpts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(size))
	}
	pipeline, err := db.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	start := time.Now()
	if err := pipeline.Ingest(ctx, records); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	slog.Info("ingestion complete", "materials", len(records), "elapsed", time.Since(start))
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	db, err := helios.NewDatabase(c.String("db"), helios.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	config := &reembed.Config{
		BatchSize:  c.Int("batch-size"),
		MaxRetries: c.Int("max-retries"),
		RetryDelay: c.Duration("retry-delay"),
	}

	r, err := reembed.NewReembedder(db.MaterialRepository(), db.AIProvider().Embedder(), config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reembedder: %w", err)
	}

	return r.Run(ctx)
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := helios.NewDatabase(c.String("db"), helios.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	retrievalConfig := retrieval.Config{
		SemanticWeight:      c.Float64("semantic-weight"),
		KeywordWeight:       c.Float64("keyword-weight"),
		CandidateMultiplier: retrieval.DefaultCandidateMultiplier,
	}

	assist, err := db.NewAssistant(ctx,
		[]retrieval.Option{retrieval.WithConfig(retrievalConfig)},
		assistant.WithTopK(c.Int("top-k")))
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}

	srv, err := server.NewServer(assist, db.MaterialRepository())
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(c.String("listen"))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("received signal, shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	db, err := helios.NewDatabase(c.String("db"), helios.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	retriever, err := db.NewRetriever(ctx)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	topK := c.Int("top-k")
	mode := strings.ToLower(c.String("mode"))

	if mode == "compare" {
		comparison, err := retriever.Compare(ctx, query, topK)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(comparison, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	var found []core.ScoredResult
	switch mode {
	case "hybrid":
		found, err = retriever.RetrieveWithMonitor(ctx, query, topK, &traceMonitor{logger: slog.Default()})
	case "semantic":
		found, err = retriever.RetrieveSemanticOnly(ctx, query, topK)
	case "keyword":
		found, err = retriever.RetrieveKeywordOnly(ctx, query, topK)
	default:
		return fmt.Errorf("invalid mode %q: must be one of hybrid, semantic, keyword, compare", mode)
	}
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, hit := range found {
		fmt.Printf("%2d. %-40s %.4f\n", i+1, hit.Document.Source(), hit.Score)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// traceMonitor logs each retrieval stage at debug level. Run with
// --log-level debug to see per-channel candidates for a query.
type traceMonitor struct {
	logger *slog.Logger
}

func (m *traceMonitor) Start(query string) {
	m.logger.Debug("retrieval started", "query", query)
}

func (m *traceMonitor) AfterSemanticSearch(results []core.ScoredResult) {
	m.logger.Debug("semantic candidates", "count", len(results))
}

func (m *traceMonitor) AfterKeywordSearch(results []core.ScoredResult) {
	m.logger.Debug("keyword candidates", "count", len(results))
}

func (m *traceMonitor) ExactMatchPromoted(source string) {
	m.logger.Debug("exact name match promoted", "material", source)
}

func (m *traceMonitor) Finish(results []core.ScoredResult) {
	m.logger.Debug("retrieval finished", "results", len(results))
}
