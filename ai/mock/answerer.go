package mock

import (
	"context"
	"fmt"

	"github.com/helios-eng/helios/ai"
)

// MockAnswerGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via function fields.
type MockAnswerGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default canned behavior.
	GenerateAnswerFunc func(ctx context.Context, question string, history []ai.ChatTurn, contextDocs []string) (string, error)

	// CondenseQuestionFunc is called by CondenseQuestion if set.
	// If nil, returns the question unchanged.
	CondenseQuestionFunc func(ctx context.Context, question string, history []ai.ChatTurn) (string, error)

	callCount int
}

// NewMockAnswerGenerator creates a mock answer generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockAnswerGenerator().
func NewMockAnswerGenerator() *MockAnswerGenerator {
	return &MockAnswerGenerator{}
}

// GenerateAnswer returns a canned answer noting how many context documents it saw.
func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, question string, history []ai.ChatTurn, contextDocs []string) (string, error) {
	m.callCount++

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, question, history, contextDocs)
	}

	return fmt.Sprintf("mock answer to %q based on %d documents", question, len(contextDocs)), nil
}

// CondenseQuestion returns the question unchanged by default.
func (m *MockAnswerGenerator) CondenseQuestion(ctx context.Context, question string, history []ai.ChatTurn) (string, error) {
	m.callCount++

	if m.CondenseQuestionFunc != nil {
		return m.CondenseQuestionFunc(ctx, question, history)
	}

	return question, nil
}

// CallCount returns the number of times any method was called.
func (m *MockAnswerGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockAnswerGenerator) Reset() {
	m.callCount = 0
	m.GenerateAnswerFunc = nil
	m.CondenseQuestionFunc = nil
}
