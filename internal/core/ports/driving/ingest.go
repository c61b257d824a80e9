package driving

import (
	"context"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// IngestService drives the crawl, chunk, embed and index pipeline
type IngestService interface {
	// Ingest runs the full pipeline for the given options
	// Returns domain.ErrIngestInProgress when a run is already active
	Ingest(ctx context.Context, opts domain.IngestOptions) (*domain.IngestResult, error)

	// Status reports whether a run is active and the last completed result
	Status() domain.IngestStatus

	// Stats summarises the indexed knowledge base
	Stats(ctx context.Context) (*domain.KnowledgeBaseStats, error)
}
