package driven

import (
	"context"
)

// LLMService provides large language model completions for answer generation
type LLMService interface {
	// Complete generates a completion for the given system and user prompts
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
