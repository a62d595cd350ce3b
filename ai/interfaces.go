package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// AnswerGenerator turns retrieved documents plus chat history into a
// natural-language answer. Implementations must be thread-safe for
// concurrent use.
type AnswerGenerator interface {
	// GenerateAnswer produces an answer to the question based strictly on
	// the provided context documents. The history gives prior conversation
	// turns, oldest first. If the context cannot answer the question, the
	// generated answer says so instead of speculating.
	GenerateAnswer(ctx context.Context, question string, history []ChatTurn, contextDocs []string) (string, error)

	// CondenseQuestion reformulates a follow-up question into a standalone
	// question that can be understood without the chat history. Called with
	// an empty history it returns the question unchanged.
	CondenseQuestion(ctx context.Context, question string, history []ChatTurn) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and AnswerGenerator instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// AnswerGenerator returns the answer generation service.
	// The returned AnswerGenerator is safe for concurrent use.
	AnswerGenerator() AnswerGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
