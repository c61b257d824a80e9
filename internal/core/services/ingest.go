package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
	"github.com/custodia-labs/siteqa/internal/core/ports/driving"
	"github.com/custodia-labs/siteqa/internal/textproc"
)

// Ensure IngestOrchestrator implements IngestService
var _ driving.IngestService = (*IngestOrchestrator)(nil)

// upsertBatchSize is the number of chunks embedded and indexed per round trip.
const upsertBatchSize = 100

// IngestOrchestrator coordinates the knowledge base build pipeline:
//  1. Acquire pages (crawl the site, or reuse the page cache)
//  2. Clean and chunk the page text
//  3. Clear the vector index
//  4. Embed and upsert the chunks in batches
//
// A single run may be in flight at a time; concurrent calls are rejected
// with ErrIngestInProgress. Question answering is deliberately not blocked
// during a run, so readers may briefly observe a just-cleared index.
type IngestOrchestrator struct {
	pageSources driven.PageSourceFactory
	pageCache   driven.PageCache
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	processor   *textproc.Processor
	collection  string
	llmModel    string
	logger      *slog.Logger

	mu        sync.Mutex
	phase     domain.IngestPhase
	startedAt *time.Time
	lastRun   *domain.IngestResult
}

// IngestOrchestratorConfig holds dependencies for IngestOrchestrator.
type IngestOrchestratorConfig struct {
	PageSources  driven.PageSourceFactory
	PageCache    driven.PageCache // optional; nil disables page caching
	Embedder     driven.EmbeddingService
	Index        driven.VectorIndex
	ChunkSize    int
	ChunkOverlap int

	// Collection and LLMModel are reported by Stats; the orchestrator
	// does not use them otherwise.
	Collection string
	LLMModel   string

	Logger *slog.Logger
}

// NewIngestOrchestrator creates a new ingest orchestrator.
func NewIngestOrchestrator(cfg IngestOrchestratorConfig) (*IngestOrchestrator, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	processor, err := textproc.NewProcessor(cfg.ChunkSize, cfg.ChunkOverlap, logger)
	if err != nil {
		return nil, err
	}

	return &IngestOrchestrator{
		pageSources: cfg.PageSources,
		pageCache:   cfg.PageCache,
		embedder:    cfg.Embedder,
		index:       cfg.Index,
		processor:   processor,
		collection:  cfg.Collection,
		llmModel:    cfg.LLMModel,
		logger:      logger,
		phase:       domain.IngestPhaseIdle,
	}, nil
}

// Ingest runs the full pipeline for the given options.
// Request-level rejections (invalid options, a run already in flight) are
// returned as errors; pipeline failures are reported inside the result with
// Success=false, matching how callers poll the status endpoint afterwards.
func (o *IngestOrchestrator) Ingest(ctx context.Context, opts domain.IngestOptions) (*domain.IngestResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := o.tryStart(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &domain.IngestResult{
		RunID:   uuid.New().String(),
		BaseURL: opts.BaseURL,
	}
	// The running state is released on every exit path, panics included.
	defer o.finish(result)

	logger := o.logger.With("run_id", result.RunID, "base_url", opts.BaseURL)
	logger.Info("starting ingestion",
		"max_pages", opts.MaxPages,
		"crawl_delay", opts.CrawlDelay,
		"force_recrawl", opts.ForceRecrawl)

	// Step 1: Acquire pages
	pages, fromCache, err := o.acquirePages(ctx, opts, logger)
	if err != nil {
		return o.failRun(result, start, fmt.Errorf("crawl: %w", err)), nil
	}
	if len(pages) == 0 {
		return o.failRun(result, start, domain.ErrNoPagesCrawled), nil
	}
	result.PagesCrawled = len(pages)

	// Step 2: Clean and chunk
	chunks, stats := o.processor.ProcessPages(pages)
	result.PagesSkipped = stats.PagesSkipped
	result.ChunksCreated = stats.ChunksCreated
	if len(chunks) == 0 {
		return o.failRun(result, start, errors.New("no chunks created from crawled pages")), nil
	}

	cs := textproc.Statistics(chunks)
	logger.Info("chunk statistics",
		"total_chunks", cs.TotalChunks,
		"unique_documents", cs.UniqueDocuments,
		"avg_size", cs.AvgChunkSize,
		"min_size", cs.MinChunkSize,
		"max_size", cs.MaxChunkSize)

	// Step 3: Clear the index so stale vectors from previous runs cannot
	// survive alongside the new ones
	if err := o.index.Clear(ctx); err != nil {
		return o.failRun(result, start, fmt.Errorf("clear index: %w", err)), nil
	}

	// Step 4: Embed and upsert in batches
	totalBatches := (len(chunks)-1)/upsertBatchSize + 1
	stored := 0
	for i := 0; i < len(chunks); i += upsertBatchSize {
		end := i + upsertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]
		batchNum := i/upsertBatchSize + 1

		vectors, err := o.embedBatch(ctx, batch)
		if err != nil {
			return o.failRun(result, start, fmt.Errorf("batch %d/%d: %w", batchNum, totalBatches, err)), nil
		}
		if err := o.index.Upsert(ctx, vectors); err != nil {
			return o.failRun(result, start, fmt.Errorf("index batch %d/%d: %w", batchNum, totalBatches, err)), nil
		}

		stored += len(batch)
		logger.Info("indexed batch",
			"batch", batchNum,
			"total_batches", totalBatches,
			"stored", stored,
			"chunks", len(chunks))
	}
	result.EmbeddingsStored = stored

	result.Success = true
	result.Took = time.Since(start)
	result.FinishedAt = time.Now()
	result.Message = fmt.Sprintf("Successfully crawled %d pages, created %d chunks and stored %d embeddings",
		result.PagesCrawled, result.ChunksCreated, result.EmbeddingsStored)

	logger.Info("ingestion complete",
		"pages_crawled", result.PagesCrawled,
		"pages_skipped", result.PagesSkipped,
		"chunks_created", result.ChunksCreated,
		"embeddings_stored", result.EmbeddingsStored,
		"from_cache", fromCache,
		"took", result.Took)

	return result, nil
}

// Status reports whether a run is active and the last completed result.
func (o *IngestOrchestrator) Status() domain.IngestStatus {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := domain.IngestStatus{Phase: o.phase}
	if o.startedAt != nil {
		t := *o.startedAt
		status.StartedAt = &t
	}
	if o.lastRun != nil {
		run := *o.lastRun
		status.LastRun = &run
	}
	return status
}

// Stats summarises the indexed knowledge base.
func (o *IngestOrchestrator) Stats(ctx context.Context) (*domain.KnowledgeBaseStats, error) {
	count, err := o.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vectors: %w", err)
	}

	return &domain.KnowledgeBaseStats{
		TotalDocuments: count,
		CollectionName: o.collection,
		EmbeddingModel: o.embedder.Model(),
		LLMModel:       o.llmModel,
	}, nil
}

// acquirePages loads pages from the cache when the run allows it, falling
// back to a fresh crawl. Freshly crawled pages are written through to the
// cache; cache write failures are logged, never fatal.
func (o *IngestOrchestrator) acquirePages(ctx context.Context, opts domain.IngestOptions, logger *slog.Logger) ([]domain.Page, bool, error) {
	if o.pageCache != nil && opts.UsePageCache && !opts.ForceRecrawl {
		pages, err := o.pageCache.Load(ctx, opts.BaseURL)
		if err == nil {
			logger.Info("loaded pages from cache", "pages", len(pages))
			return pages, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("page cache read failed, crawling instead", "error", err)
		}
	}

	source, err := o.pageSources.Create(opts)
	if err != nil {
		return nil, false, err
	}
	pages, err := source.Crawl(ctx)
	if err != nil {
		return nil, false, err
	}

	if o.pageCache != nil && len(pages) > 0 {
		if err := o.pageCache.Save(ctx, opts.BaseURL, pages); err != nil {
			logger.Warn("page cache write failed", "error", err)
		}
	}
	return pages, false, nil
}

// embedBatch embeds one batch of chunks and pairs each embedding with its
// chunk's identity and metadata.
func (o *IngestOrchestrator) embedBatch(ctx context.Context, batch []domain.Chunk) ([]domain.IndexedVector, error) {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Text
	}

	embeddings, err := o.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(batch) {
		return nil, fmt.Errorf("embed: got %d embeddings for %d chunks", len(embeddings), len(batch))
	}

	vectors := make([]domain.IndexedVector, len(batch))
	for i, chunk := range batch {
		vectors[i] = domain.IndexedVector{
			ID:        chunk.VectorID(),
			Embedding: embeddings[i],
			Document:  chunk.Text,
			Metadata:  chunk.Metadata(),
		}
	}
	return vectors, nil
}

// tryStart transitions to the running state, rejecting concurrent runs.
func (o *IngestOrchestrator) tryStart() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase == domain.IngestPhaseRunning {
		return domain.ErrIngestInProgress
	}

	now := time.Now()
	o.phase = domain.IngestPhaseRunning
	o.startedAt = &now
	return nil
}

// finish records the run outcome and releases the running state.
func (o *IngestOrchestrator) finish(result *domain.IngestResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.phase = domain.IngestPhaseDone
	o.startedAt = nil
	o.lastRun = result
}

// failRun marks the run as failed and fills in the timing fields.
func (o *IngestOrchestrator) failRun(result *domain.IngestResult, start time.Time, err error) *domain.IngestResult {
	result.Success = false
	result.Message = "Ingestion failed: " + err.Error()
	result.Took = time.Since(start)
	result.FinishedAt = time.Now()

	o.logger.Error("ingestion failed", "run_id", result.RunID, "error", err, "took", result.Took)
	return result
}
