package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageCache = (*PageCache)(nil)

// pagesPrefix namespaces cached crawls; the full key is the prefix plus the
// crawl's base URL.
const pagesPrefix = "pages:"

// DefaultTTL is how long a cached crawl stays reusable.
const DefaultTTL = 24 * time.Hour

// PageCache implements driven.PageCache using Redis. Each crawl is stored as
// one JSON blob under its base URL, expiring after the configured TTL.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a Redis-backed PageCache. A non-positive ttl falls
// back to DefaultTTL.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Save stores the crawled pages for baseURL, replacing any previous crawl
func (c *PageCache) Save(ctx context.Context, baseURL string, pages []domain.Page) error {
	data, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("failed to marshal pages: %w", err)
	}

	if err := c.client.Set(ctx, pagesPrefix+baseURL, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pages: %w", err)
	}
	return nil
}

// Load retrieves the cached pages for baseURL
func (c *PageCache) Load(ctx context.Context, baseURL string) ([]domain.Page, error) {
	data, err := c.client.Get(ctx, pagesPrefix+baseURL).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}

	var pages []domain.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pages: %w", err)
	}
	return pages, nil
}

// Clear removes the cached pages for baseURL
func (c *PageCache) Clear(ctx context.Context, baseURL string) error {
	if err := c.client.Del(ctx, pagesPrefix+baseURL).Err(); err != nil {
		return fmt.Errorf("failed to clear pages: %w", err)
	}
	return nil
}
