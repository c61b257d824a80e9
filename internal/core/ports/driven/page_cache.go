package driven

import (
	"context"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// PageCache persists crawled pages so a knowledge base can be rebuilt
// without re-crawling the site
type PageCache interface {
	// Save stores the crawled pages for a base URL, replacing any
	// previous entry
	Save(ctx context.Context, baseURL string, pages []domain.Page) error

	// Load returns the cached pages for a base URL
	// Returns domain.ErrNotFound when no entry exists
	Load(ctx context.Context, baseURL string) ([]domain.Page, error)

	// Clear removes the entry for a base URL
	Clear(ctx context.Context, baseURL string) error
}
