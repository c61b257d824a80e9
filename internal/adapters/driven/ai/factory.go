package ai

import (
	"fmt"

	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// Config carries the OpenAI-compatible endpoint settings shared by the
// embedding and chat services. BaseURL is empty for the hosted API and
// overridden for proxies and tests.
type Config struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	LLMModel       string
	Temperature    float64
	MaxTokens      int
}

// NewServices builds the embedding and chat services from one config so the
// two always share credentials and endpoint.
func NewServices(cfg Config) (driven.EmbeddingService, driven.LLMService, error) {
	embedder, err := NewOpenAIEmbedding(cfg.APIKey, cfg.EmbeddingModel, cfg.BaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding service: %w", err)
	}

	llm, err := NewOpenAILLM(cfg.APIKey, cfg.LLMModel, cfg.BaseURL, cfg.Temperature, cfg.MaxTokens)
	if err != nil {
		_ = embedder.Close()
		return nil, nil, fmt.Errorf("llm service: %w", err)
	}

	return embedder, llm, nil
}
