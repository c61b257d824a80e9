package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
	"github.com/custodia-labs/siteqa/internal/core/ports/driving"
)

// Ensure answerService implements AnswerService
var _ driving.AnswerService = (*answerService)(nil)

// systemPrompt pins the model to the retrieved context for every question.
const systemPrompt = "You are a helpful assistant that answers questions based strictly on provided context. Never use external knowledge."

// promptTemplate frames the retrieved chunks and the question. The model is
// told to cite source numbers, which match the order of the chunks.
const promptTemplate = `You are a helpful assistant that answers questions based ONLY on the provided context.

IMPORTANT INSTRUCTIONS:
- Answer the question using ONLY the information from the context below
- If the answer cannot be found in the context, respond with: "I don't have enough information to answer that question based on the available documentation."
- Be concise but complete
- Cite which sources you used by mentioning the source numbers (e.g., "According to Source 1...")
- Do not make up information or use external knowledge

CONTEXT:
%s

QUESTION: %s

ANSWER:`

// answerService implements the AnswerService interface
type answerService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	llm      driven.LLMService
	topK     int
	logger   *slog.Logger
}

// NewAnswerService creates a new AnswerService. defaultTopK applies when the
// caller does not request a specific number of contexts.
func NewAnswerService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	llm driven.LLMService,
	defaultTopK int,
	logger *slog.Logger,
) driving.AnswerService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &answerService{
		embedder: embedder,
		index:    index,
		llm:      llm,
		topK:     defaultTopK,
		logger:   logger,
	}
}

// Ask retrieves the chunks most relevant to the question and generates an
// answer grounded in them. Business-level misses (nothing retrieved,
// generation failure) come back as a normal Answer with Success=false; an
// error return means the question itself was unusable.
func (s *answerService) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	start := time.Now()

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.topK
	}

	s.logger.Info("processing question", "question", truncate(question, 80), "top_k", topK)

	// Step 1: Retrieve relevant chunks
	retrieval, err := s.retrieve(ctx, question, topK)
	if err != nil {
		s.logger.Error("retrieval failed", "error", err)
		return s.failedAnswer(question, err, start), nil
	}

	// Nothing indexed matches: answer without a generation round trip
	if len(retrieval.Chunks) == 0 {
		s.logger.Warn("no relevant chunks found", "question", truncate(question, 80))
		return &domain.Answer{
			Question:  question,
			Text:      domain.NoInformationAnswer,
			Sources:   []domain.Source{},
			Success:   false,
			Retrieval: retrieval.Took,
			Total:     time.Since(start),
		}, nil
	}

	// Step 2: Generate the answer from the assembled context
	genStart := time.Now()
	text, err := s.llm.Complete(ctx, systemPrompt, buildPrompt(question, retrieval.Chunks))
	if err != nil {
		s.logger.Error("generation failed", "error", err)
		return s.failedAnswer(question, err, start), nil
	}
	generation := time.Since(genStart)

	// Step 3: Pair each cited page with its best similarity score
	sources := collectSources(retrieval.Chunks)

	answer := &domain.Answer{
		Question:    question,
		Text:        strings.TrimSpace(text),
		Sources:     sources,
		Success:     true,
		NumContexts: len(retrieval.Chunks),
		Retrieval:   retrieval.Took,
		Generation:  generation,
		Total:       time.Since(start),
	}

	s.logger.Info("answer generated",
		"contexts", answer.NumContexts,
		"sources", len(sources),
		"retrieval", retrieval.Took,
		"generation", generation,
		"total", answer.Total)

	return answer, nil
}

// retrieve embeds the query and asks the index for the nearest chunks,
// converting cosine distance to similarity.
func (s *answerService) retrieve(ctx context.Context, query string, topK int) (*domain.RetrievalResult, error) {
	start := time.Now()

	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	chunks := make([]domain.ScoredChunk, len(hits))
	for i, hit := range hits {
		chunks[i] = domain.ScoredChunk{
			Document:   hit.Document,
			Metadata:   hit.Metadata,
			Similarity: 1 - hit.Distance,
		}
	}

	return &domain.RetrievalResult{
		Query:  query,
		Chunks: chunks,
		Took:   time.Since(start),
	}, nil
}

// failedAnswer wraps an upstream failure in a normal answer payload so the
// caller never sees a hard fault for a generation problem.
func (s *answerService) failedAnswer(question string, err error, start time.Time) *domain.Answer {
	return &domain.Answer{
		Question: question,
		Text:     "An error occurred while processing your question: " + err.Error(),
		Sources:  []domain.Source{},
		Success:  false,
		Total:    time.Since(start),
	}
}

// buildPrompt lays the retrieved chunks out under numbered source headers so
// the model can cite them.
func buildPrompt(question string, chunks []domain.ScoredChunk) string {
	var context strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			context.WriteString("\n\n")
		}
		fmt.Fprintf(&context, "[Source %d: %s]\n%s", i+1, chunk.Metadata.SourceTitle, chunk.Document)
	}

	return fmt.Sprintf(promptTemplate, context.String(), question)
}

// collectSources deduplicates cited pages by URL. Chunks arrive sorted by
// descending similarity, so first appearance keeps the best score.
func collectSources(chunks []domain.ScoredChunk) []domain.Source {
	seen := make(map[string]struct{})
	sources := make([]domain.Source, 0, len(chunks))
	for _, chunk := range chunks {
		if _, dup := seen[chunk.Metadata.SourceURL]; dup {
			continue
		}
		seen[chunk.Metadata.SourceURL] = struct{}{}
		sources = append(sources, domain.Source{
			Title:     chunk.Metadata.SourceTitle,
			URL:       chunk.Metadata.SourceURL,
			Relevance: chunk.Similarity,
		})
	}
	return sources
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
