package domain

import (
	"fmt"
	"net/url"
	"time"
)

// IngestPhase represents the current state of the ingestion pipeline.
// Exactly one ingestion may run at a time; the phase moves Idle -> Running ->
// Done and stays Done (with a recorded result) until the next run starts.
type IngestPhase string

const (
	IngestPhaseIdle    IngestPhase = "idle"
	IngestPhaseRunning IngestPhase = "running"
	IngestPhaseDone    IngestPhase = "done"
)

// IngestOptions configures one ingestion run. UsePageCache enables the
// read side of the page cache (CLI ingestion); the HTTP crawl endpoint always
// fetches fresh and leaves it unset. Successful crawls are written through to
// the cache either way.
type IngestOptions struct {
	BaseURL      string        `json:"base_url"`
	MaxPages     int           `json:"max_pages"`
	CrawlDelay   time.Duration `json:"crawl_delay" swaggertype:"number" example:"1.0"`
	ForceRecrawl bool          `json:"force_recrawl,omitempty"`
	UsePageCache bool          `json:"-"`
}

// DefaultIngestOptions returns the documented defaults: a 50 page budget and
// a one second politeness delay.
func DefaultIngestOptions(baseURL string) IngestOptions {
	return IngestOptions{
		BaseURL:    baseURL,
		MaxPages:   50,
		CrawlDelay: time.Second,
	}
}

// Validate rejects option values outside their documented ranges:
// MaxPages in [1,100] and CrawlDelay in [500ms,5s]. BaseURL must be an
// absolute http or https URL.
func (o IngestOptions) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: base_url must be an absolute http(s) URL", ErrInvalidInput)
	}
	if o.MaxPages < 1 || o.MaxPages > 100 {
		return fmt.Errorf("%w: max_pages must be between 1 and 100", ErrInvalidInput)
	}
	if o.CrawlDelay < 500*time.Millisecond || o.CrawlDelay > 5*time.Second {
		return fmt.Errorf("%w: crawl_delay must be between 0.5 and 5.0 seconds", ErrInvalidInput)
	}
	return nil
}

// IngestResult is the recorded outcome of one ingestion run. Success is false
// when the crawl collected zero pages or a pipeline stage failed; Message
// carries the human-readable reason either way.
type IngestResult struct {
	RunID            string        `json:"run_id"`
	BaseURL          string        `json:"base_url"`
	Success          bool          `json:"success"`
	Message          string        `json:"message"`
	PagesCrawled     int           `json:"pages_crawled"`
	PagesSkipped     int           `json:"pages_skipped"`
	ChunksCreated    int           `json:"chunks_created"`
	EmbeddingsStored int           `json:"embeddings_generated"`
	Took             time.Duration `json:"took" swaggertype:"integer" example:"42000000000"`
	FinishedAt       time.Time     `json:"finished_at"`
}

// IngestStatus is a snapshot of the pipeline state for status reporting.
type IngestStatus struct {
	Phase     IngestPhase   `json:"phase"`
	StartedAt *time.Time    `json:"started_at,omitempty"`
	LastRun   *IngestResult `json:"last_run,omitempty"`
}

// IsRunning reports whether an ingestion is currently in flight.
func (s IngestStatus) IsRunning() bool {
	return s.Phase == IngestPhaseRunning
}

// KnowledgeBaseStats summarises the index for the statistics endpoint.
type KnowledgeBaseStats struct {
	TotalDocuments int    `json:"total_documents"`
	CollectionName string `json:"collection_name"`
	EmbeddingModel string `json:"embedding_model"`
	LLMModel       string `json:"llm_model"`
}
