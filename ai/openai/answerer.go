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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helios-eng/helios/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AnswerGenerator implements ai.AnswerGenerator using OpenAI-compatible chat APIs.
type AnswerGenerator struct {
	client llms.Model
	logger *slog.Logger
}

// newAnswerGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnswerGenerator(config *ai.Config) (*AnswerGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &AnswerGenerator{
		client: client,
		logger: slog.Default().With("component", "openai-answerer"),
	}, nil
}

// NewAnswerGenerator creates a new answer generator using the provided configuration.
//
// Returns ai.AnswerGenerator interface to enforce abstraction.
func NewAnswerGenerator(config *ai.Config) (ai.AnswerGenerator, error) {
	return newAnswerGenerator(config)
}

// GenerateAnswer produces an answer to the question grounded in the provided
// context documents. Temperature is pinned to 0 so answers stay reproducible
// for a fixed corpus and question.
func (g *AnswerGenerator) GenerateAnswer(ctx context.Context, question string, history []ai.ChatTurn, contextDocs []string) (string, error) {
	system := fmt.Sprintf(answerPrompt, strings.Join(contextDocs, "\n\n---\n\n"))
	content := buildMessages(system, history, question)

	g.logger.Debug("generating answer", "historyTurns", len(history), "contextDocs", len(contextDocs))

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("failed to generate answer", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// CondenseQuestion reformulates a follow-up question into a standalone one.
// Without history there is nothing to resolve, so the question passes through
// untouched and no model call is made.
func (g *AnswerGenerator) CondenseQuestion(ctx context.Context, question string, history []ai.ChatTurn) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	content := buildMessages(condensePrompt, history, question)

	g.logger.Debug("condensing question", "historyTurns", len(history))

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("failed to condense question", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model, using original question")
		return question, nil
	}

	condensed := strings.TrimSpace(response.Choices[0].Content)
	if condensed == "" {
		return question, nil
	}
	return condensed, nil
}

// buildMessages assembles the system prompt, chat history, and final question
// into the langchaingo message format.
func buildMessages(system string, history []ai.ChatTurn, question string) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(system)},
	})

	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == ai.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(turn.Content)},
		})
	}

	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(question)},
	})

	return content
}
