package driven

import (
	"context"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// PageSource produces the pages for one ingestion run.
// The production implementation is the breadth-first site crawler.
type PageSource interface {
	// Crawl fetches pages until the page budget or the site is exhausted.
	// Fetch failures are skipped, not surfaced; the only error condition
	// is context cancellation.
	Crawl(ctx context.Context) ([]domain.Page, error)
}

// PageSourceFactory builds a PageSource for the given run options.
// A fresh source is created per run because the base URL and budget
// change per request.
type PageSourceFactory interface {
	// Create builds a page source for one run.
	Create(opts domain.IngestOptions) (PageSource, error)
}
