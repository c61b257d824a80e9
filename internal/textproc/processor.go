package textproc

import (
	"log/slog"
	"unicode/utf8"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// minPageChars is the smallest cleaned page worth chunking.
const minPageChars = 100

// ProcessStats aggregates the outcome of one processing batch. An
// all-skipped batch is a recoverable empty result, not an error.
type ProcessStats struct {
	PagesProcessed int `json:"pages_processed"`
	PagesSkipped   int `json:"pages_skipped"`
	ChunksCreated  int `json:"chunks_created"`
}

// Processor runs Clean then Chunk over crawled pages and stamps each chunk
// with its source metadata.
type Processor struct {
	chunker *Chunker
	logger  *slog.Logger
}

// NewProcessor creates a processor with the given window configuration.
func NewProcessor(chunkSize, overlap int, logger *slog.Logger) (*Processor, error) {
	chunker, err := NewChunker(chunkSize, overlap)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{chunker: chunker, logger: logger}, nil
}

// ProcessPages cleans and chunks each page. Pages whose cleaned text falls
// under 100 characters, or that yield zero chunks, are skipped and counted.
// Every produced chunk carries its source URL and title, a 0-based index
// unique within the source, the page's total chunk count, and its character
// count.
func (p *Processor) ProcessPages(pages []domain.Page) ([]domain.Chunk, ProcessStats) {
	var (
		out   []domain.Chunk
		stats ProcessStats
	)

	for _, page := range pages {
		cleaned := Clean(page.Content)
		if utf8.RuneCountInString(cleaned) < minPageChars {
			p.logger.Debug("skipping page, content too short",
				"url", page.URL,
				"chars", utf8.RuneCountInString(cleaned))
			stats.PagesSkipped++
			continue
		}

		parts := p.chunker.Chunk(cleaned)
		if len(parts) == 0 {
			p.logger.Debug("skipping page, no chunks produced", "url", page.URL)
			stats.PagesSkipped++
			continue
		}

		for i, part := range parts {
			out = append(out, domain.Chunk{
				Text:        part,
				SourceURL:   page.URL,
				SourceTitle: page.Title,
				Index:       i,
				TotalChunks: len(parts),
				CharCount:   utf8.RuneCountInString(part),
			})
		}
		stats.PagesProcessed++
	}

	stats.ChunksCreated = len(out)
	p.logger.Info("processed pages",
		"pages", len(pages),
		"processed", stats.PagesProcessed,
		"skipped", stats.PagesSkipped,
		"chunks", stats.ChunksCreated)
	return out, stats
}

// ChunkStatistics summarises a processed chunk batch.
type ChunkStatistics struct {
	TotalChunks     int     `json:"total_chunks"`
	UniqueDocuments int     `json:"unique_documents"`
	AvgChunkSize    float64 `json:"avg_chunk_size"`
	MinChunkSize    int     `json:"min_chunk_size"`
	MaxChunkSize    int     `json:"max_chunk_size"`
}

// Statistics computes size and distribution figures for a chunk batch.
func Statistics(chunks []domain.Chunk) ChunkStatistics {
	if len(chunks) == 0 {
		return ChunkStatistics{}
	}

	stats := ChunkStatistics{
		TotalChunks:  len(chunks),
		MinChunkSize: chunks[0].CharCount,
	}

	seen := make(map[string]struct{})
	total := 0
	for _, chunk := range chunks {
		seen[chunk.SourceURL] = struct{}{}
		total += chunk.CharCount
		if chunk.CharCount < stats.MinChunkSize {
			stats.MinChunkSize = chunk.CharCount
		}
		if chunk.CharCount > stats.MaxChunkSize {
			stats.MaxChunkSize = chunk.CharCount
		}
	}

	stats.UniqueDocuments = len(seen)
	stats.AvgChunkSize = float64(total) / float64(len(chunks))
	return stats
}
