package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/siteqa/internal/core/ports/driving"
)

// Test helper to create an answer service with mocks
func createTestAnswerService(t *testing.T) (driving.AnswerService, *mocks.MockEmbeddingService, *mocks.MockVectorIndex, *mocks.MockLLMService) {
	t.Helper()

	embedder := mocks.NewMockEmbeddingService()
	index := mocks.NewMockVectorIndex()
	llm := mocks.NewMockLLMService()
	svc := NewAnswerService(embedder, index, llm, 5, testLogger())
	return svc, embedder, index, llm
}

// seedChunks indexes chunks through the mock embedder so query similarity
// behaves like the real pipeline.
func seedChunks(t *testing.T, embedder *mocks.MockEmbeddingService, index *mocks.MockVectorIndex, chunks []domain.Chunk) {
	t.Helper()

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := embedder.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	vectors := make([]domain.IndexedVector, len(chunks))
	for i, chunk := range chunks {
		vectors[i] = domain.IndexedVector{
			ID:        chunk.VectorID(),
			Embedding: embeddings[i],
			Document:  chunk.Text,
			Metadata:  chunk.Metadata(),
		}
	}
	if err := index.Upsert(context.Background(), vectors); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
}

func testCorpus() []domain.Chunk {
	chunks := []domain.Chunk{
		{Text: "Widgets are assembled by hand in the northern factory.", SourceURL: "https://docs.test/widgets", SourceTitle: "Widgets", Index: 0, TotalChunks: 1},
		{Text: "Gadgets ship flat packed and need a hex key to build.", SourceURL: "https://docs.test/gadgets", SourceTitle: "Gadgets", Index: 0, TotalChunks: 1},
		{Text: "Sprockets need yearly lubrication with mineral oil.", SourceURL: "https://docs.test/sprockets", SourceTitle: "Sprockets", Index: 0, TotalChunks: 1},
	}
	for i := range chunks {
		chunks[i].CharCount = len(chunks[i].Text)
	}
	return chunks
}

func TestAnswerService_AnswersFromRetrievedContext(t *testing.T) {
	svc, embedder, index, llm := createTestAnswerService(t)
	corpus := testCorpus()
	seedChunks(t, embedder, index, corpus)
	llm.SetResponse("According to Source 1, widgets are assembled by hand.")

	question := corpus[0].Text
	answer, err := svc.Ask(context.Background(), question, 3)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if !answer.Success {
		t.Fatalf("Ask() not successful: %s", answer.Text)
	}
	if answer.Question != question {
		t.Errorf("Question = %q, want the original question", answer.Question)
	}
	if answer.Text != "According to Source 1, widgets are assembled by hand." {
		t.Errorf("Text = %q", answer.Text)
	}
	if answer.NumContexts != 3 {
		t.Errorf("NumContexts = %d, want 3", answer.NumContexts)
	}
	if len(answer.Sources) != 3 {
		t.Fatalf("len(Sources) = %d, want 3", len(answer.Sources))
	}

	if llm.Calls() != 1 {
		t.Errorf("llm calls = %d, want 1", llm.Calls())
	}
	if llm.LastSystemPrompt != systemPrompt {
		t.Errorf("system prompt = %q", llm.LastSystemPrompt)
	}
	wantBlock := "[Source 1: Widgets]\n" + corpus[0].Text
	if !strings.Contains(llm.LastUserPrompt, wantBlock) {
		t.Errorf("user prompt missing context block %q", wantBlock)
	}
	if !strings.Contains(llm.LastUserPrompt, "QUESTION: "+question) {
		t.Error("user prompt missing the question line")
	}
	if !strings.HasSuffix(llm.LastUserPrompt, "ANSWER:") {
		t.Error("user prompt must end with the answer cue")
	}
}

func TestAnswerService_ExactMatchRanksFirstWithPerfectScore(t *testing.T) {
	svc, embedder, index, _ := createTestAnswerService(t)
	corpus := testCorpus()
	seedChunks(t, embedder, index, corpus)

	// A question identical to an indexed chunk embeds to the same vector,
	// so that chunk must come back first with similarity 1
	answer, err := svc.Ask(context.Background(), corpus[2].Text, 3)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if answer.Sources[0].URL != corpus[2].SourceURL {
		t.Errorf("top source = %s, want %s", answer.Sources[0].URL, corpus[2].SourceURL)
	}
	if diff := math.Abs(answer.Sources[0].Relevance - 1.0); diff > 1e-6 {
		t.Errorf("top relevance = %v, want 1.0 within 1e-6", answer.Sources[0].Relevance)
	}
}

func TestAnswerService_EmptyIndexReturnsNoInformation(t *testing.T) {
	svc, _, _, llm := createTestAnswerService(t)

	answer, err := svc.Ask(context.Background(), "What colour are widgets?", 5)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if answer.Success {
		t.Error("expected Success=false for an empty index")
	}
	if answer.Text != domain.NoInformationAnswer {
		t.Errorf("Text = %q, want the no-information answer", answer.Text)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("len(Sources) = %d, want 0", len(answer.Sources))
	}
	if answer.NumContexts != 0 {
		t.Errorf("NumContexts = %d, want 0", answer.NumContexts)
	}
	if llm.Calls() != 0 {
		t.Errorf("llm calls = %d, generation must be skipped", llm.Calls())
	}
}

func TestAnswerService_GenerationFailureBecomesAnswer(t *testing.T) {
	svc, embedder, index, llm := createTestAnswerService(t)
	seedChunks(t, embedder, index, testCorpus())
	llm.SetFailNext(true)

	answer, err := svc.Ask(context.Background(), "How are widgets made?", 3)
	if err != nil {
		t.Fatalf("Ask() error = %v, want the failure inside the answer", err)
	}

	if answer.Success {
		t.Error("expected Success=false when generation fails")
	}
	if !strings.Contains(answer.Text, "An error occurred while processing your question") {
		t.Errorf("Text = %q, want the error preamble", answer.Text)
	}
	if !strings.Contains(answer.Text, "llm unavailable") {
		t.Errorf("Text = %q, want the underlying error included", answer.Text)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("len(Sources) = %d, want 0 on failure", len(answer.Sources))
	}
}

func TestAnswerService_RetrievalFailureBecomesAnswer(t *testing.T) {
	svc, embedder, index, llm := createTestAnswerService(t)
	seedChunks(t, embedder, index, testCorpus())
	embedder.SetFailNext(true)

	answer, err := svc.Ask(context.Background(), "How are widgets made?", 3)
	if err != nil {
		t.Fatalf("Ask() error = %v, want the failure inside the answer", err)
	}

	if answer.Success {
		t.Error("expected Success=false when retrieval fails")
	}
	if !strings.Contains(answer.Text, "embed query") {
		t.Errorf("Text = %q, want the retrieval stage named", answer.Text)
	}
	if llm.Calls() != 0 {
		t.Errorf("llm calls = %d, generation must be skipped", llm.Calls())
	}
}

func TestAnswerService_DeduplicatesSourcesByURL(t *testing.T) {
	svc, embedder, index, _ := createTestAnswerService(t)

	chunks := []domain.Chunk{
		{Text: "The installation guide covers both platforms.", SourceURL: "https://docs.test/install", SourceTitle: "Install", Index: 0, TotalChunks: 2},
		{Text: "Linux installs use the tarball from the release page.", SourceURL: "https://docs.test/install", SourceTitle: "Install", Index: 1, TotalChunks: 2},
		{Text: "Configuration lives in a single YAML file.", SourceURL: "https://docs.test/config", SourceTitle: "Config", Index: 0, TotalChunks: 1},
	}
	for i := range chunks {
		chunks[i].CharCount = len(chunks[i].Text)
	}
	seedChunks(t, embedder, index, chunks)

	answer, err := svc.Ask(context.Background(), chunks[0].Text, 3)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if answer.NumContexts != 3 {
		t.Errorf("NumContexts = %d, want 3", answer.NumContexts)
	}
	if len(answer.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2 after URL dedup", len(answer.Sources))
	}
	if answer.Sources[0].URL != "https://docs.test/install" {
		t.Errorf("Sources[0].URL = %s, want the queried page first", answer.Sources[0].URL)
	}

	urls := map[string]bool{}
	for _, source := range answer.Sources {
		urls[source.URL] = true
	}
	if !urls["https://docs.test/install"] || !urls["https://docs.test/config"] {
		t.Errorf("Sources = %+v, want both pages cited once", answer.Sources)
	}
}

func TestAnswerService_RejectsEmptyQuestion(t *testing.T) {
	svc, _, _, _ := createTestAnswerService(t)

	answer, err := svc.Ask(context.Background(), "   \t", 5)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Ask() error = %v, want ErrInvalidInput", err)
	}
	if answer != nil {
		t.Error("expected no answer for an invalid question")
	}
}

func TestAnswerService_TopKDefaultsAndLimits(t *testing.T) {
	svc, embedder, index, _ := createTestAnswerService(t)

	chunks := make([]domain.Chunk, 7)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			Text:        fmt.Sprintf("Reference page number %s holds a distinct body of text.", strings.Repeat("x", i+1)),
			SourceURL:   fmt.Sprintf("https://docs.test/page-%d", i),
			SourceTitle: fmt.Sprintf("Page %d", i),
			Index:       0,
			TotalChunks: 1,
		}
		chunks[i].CharCount = len(chunks[i].Text)
	}
	seedChunks(t, embedder, index, chunks)

	// topK <= 0 falls back to the configured default of 5
	answer, err := svc.Ask(context.Background(), "Which page is it on?", 0)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer.NumContexts != 5 {
		t.Errorf("NumContexts = %d, want the default 5", answer.NumContexts)
	}

	answer, err = svc.Ask(context.Background(), "Which page is it on?", 2)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer.NumContexts != 2 {
		t.Errorf("NumContexts = %d, want 2", answer.NumContexts)
	}
}

func TestBuildPrompt(t *testing.T) {
	chunks := []domain.ScoredChunk{
		{Document: "First chunk body.", Metadata: domain.ChunkMetadata{SourceTitle: "Alpha", SourceURL: "https://docs.test/a"}, Similarity: 0.9},
		{Document: "Second chunk body.", Metadata: domain.ChunkMetadata{SourceTitle: "Beta", SourceURL: "https://docs.test/b"}, Similarity: 0.8},
	}

	prompt := buildPrompt("How do I install?", chunks)

	if !strings.Contains(prompt, "[Source 1: Alpha]\nFirst chunk body.") {
		t.Error("prompt missing the first numbered context block")
	}
	if !strings.Contains(prompt, "\n\n[Source 2: Beta]\nSecond chunk body.") {
		t.Error("prompt missing the second numbered context block")
	}
	if !strings.Contains(prompt, "QUESTION: How do I install?") {
		t.Error("prompt missing the question line")
	}
	if !strings.HasSuffix(prompt, "ANSWER:") {
		t.Error("prompt must end with the answer cue")
	}
}

func TestCollectSources_KeepsFirstScore(t *testing.T) {
	chunks := []domain.ScoredChunk{
		{Metadata: domain.ChunkMetadata{SourceURL: "https://docs.test/a", SourceTitle: "A"}, Similarity: 0.9},
		{Metadata: domain.ChunkMetadata{SourceURL: "https://docs.test/b", SourceTitle: "B"}, Similarity: 0.8},
		{Metadata: domain.ChunkMetadata{SourceURL: "https://docs.test/a", SourceTitle: "A"}, Similarity: 0.7},
	}

	sources := collectSources(chunks)
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}
	if sources[0].URL != "https://docs.test/a" || sources[0].Relevance != 0.9 {
		t.Errorf("sources[0] = %+v, want page a with its best score", sources[0])
	}
	if sources[1].URL != "https://docs.test/b" || sources[1].Relevance != 0.8 {
		t.Errorf("sources[1] = %+v, want page b", sources[1])
	}
}
