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


package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/helios-eng/helios/ai"
	"github.com/helios-eng/helios/core"
	"github.com/helios-eng/helios/retrieval"
)

// DefaultTopK is the number of documents retrieved per question.
const DefaultTopK = 5

// noContextAnswer is returned when retrieval finds nothing. The model is
// not consulted; without context it could only guess.
const noContextAnswer = "I could not find any materials in the database relevant to your question. " +
	"Try asking about a specific material or property."

// QueryRequest is one turn of conversation with the assistant.
type QueryRequest struct {
	// Question is the user's current question.
	Question string

	// History is the prior conversation, oldest first.
	History []ai.ChatTurn

	// UseHybrid selects blended semantic+keyword retrieval. When false,
	// only the semantic channel is used.
	UseHybrid bool

	// TopK caps the number of retrieved documents. Zero means DefaultTopK.
	TopK int
}

// SourceDocument is one document the answer was grounded on.
type SourceDocument struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// QueryResponse is the assistant's answer with its supporting evidence.
type QueryResponse struct {
	Answer           string           `json:"answer"`
	Sources          []SourceDocument `json:"sources"`
	DetectedMaterial string           `json:"detected_material,omitempty"`
	RetrievalMethod  string           `json:"retrieval_method"`
}

// Assistant orchestrates question condensation, retrieval, and grounded
// answer generation.
type Assistant struct {
	retriever *retrieval.HybridRetriever
	answerer  ai.AnswerGenerator
	topK      int
	logger    *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithTopK sets the default number of documents retrieved per question.
func WithTopK(topK int) Option {
	return func(a *Assistant) error {
		if topK > 0 {
			a.topK = topK
		}
		return nil
	}
}

// NewAssistant creates a new assistant.
func NewAssistant(retriever *retrieval.HybridRetriever, provider ai.AIProvider, opts ...Option) (*Assistant, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	a := &Assistant{
		retriever: retriever,
		answerer:  provider.AnswerGenerator(),
		topK:      DefaultTopK,
		logger:    slog.Default().With("component", "assistant"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Query answers a question grounded in retrieved material documents.
func (a *Assistant) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	topK := req.TopK
	if topK <= 0 {
		topK = a.topK
	}

	// Follow-up questions lean on pronouns and ellipsis; condense them
	// into standalone questions before retrieval.
	searchQuestion := question
	if len(req.History) > 0 {
		condensed, err := a.answerer.CondenseQuestion(ctx, question, req.History)
		if err != nil {
			a.logger.Error("error condensing question", "err", err)
			return nil, err
		}
		if strings.TrimSpace(condensed) != "" {
			searchQuestion = condensed
		}
	}

	var (
		results []core.ScoredResult
		method  string
		err     error
	)
	if req.UseHybrid {
		method = "hybrid"
		results, err = a.retriever.Retrieve(ctx, searchQuestion, topK)
	} else {
		method = "semantic"
		results, err = a.retriever.RetrieveSemanticOnly(ctx, searchQuestion, topK)
	}
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		a.logger.Info("no documents retrieved", "question", searchQuestion, "method", method)
		return &QueryResponse{
			Answer:          noContextAnswer,
			Sources:         []SourceDocument{},
			RetrievalMethod: method,
		}, nil
	}

	contextDocs := make([]string, len(results))
	sources := make([]SourceDocument, len(results))
	for i, r := range results {
		contextDocs[i] = r.Document.Content
		sources[i] = SourceDocument{
			Source:  r.Document.Source(),
			Content: r.Document.Content,
		}
	}

	answer, err := a.answerer.GenerateAnswer(ctx, question, req.History, contextDocs)
	if err != nil {
		a.logger.Error("error generating answer", "err", err)
		return nil, err
	}

	return &QueryResponse{
		Answer:           answer,
		Sources:          sources,
		DetectedMaterial: results[0].Document.Source(),
		RetrievalMethod:  method,
	}, nil
}

// Compare runs the diagnostic retrieval comparison for a question.
func (a *Assistant) Compare(ctx context.Context, question string, topK int) (*retrieval.Comparison, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if topK <= 0 {
		topK = a.topK
	}
	return a.retriever.Compare(ctx, question, topK)
}
