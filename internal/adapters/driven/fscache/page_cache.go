// Package fscache caches crawled pages as JSON files on local disk, the
// zero-dependency fallback when Redis is not configured. Each crawl is one
// file holding the plain page array, so cached data stays readable and
// greppable.
package fscache

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageCache = (*PageCache)(nil)

// PageCache implements driven.PageCache on the local filesystem.
type PageCache struct {
	dir string
}

// NewPageCache creates the cache directory if needed
func NewPageCache(dir string) (*PageCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: cache directory must not be empty", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &PageCache{dir: dir}, nil
}

// Save writes the crawled pages for baseURL, replacing any previous crawl.
// The write goes through a temp file so readers never see a partial array.
func (c *PageCache) Save(ctx context.Context, baseURL string, pages []domain.Page) error {
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pages: %w", err)
	}

	path := c.path(baseURL)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Load retrieves the cached pages for baseURL
func (c *PageCache) Load(ctx context.Context, baseURL string) ([]domain.Page, error) {
	data, err := os.ReadFile(c.path(baseURL))
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var pages []domain.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pages: %w", err)
	}
	return pages, nil
}

// Clear removes the cached pages for baseURL
func (c *PageCache) Clear(ctx context.Context, baseURL string) error {
	err := os.Remove(c.path(baseURL))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// path maps a base URL to its cache file. The readable slug makes files easy
// to find by hand; the hash keeps distinct URLs from colliding after
// sanitisation.
func (c *PageCache) path(baseURL string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(baseURL))

	name := fmt.Sprintf("crawled_%s_%08x.json", urlSlug(baseURL), h.Sum32())
	return filepath.Join(c.dir, name)
}

// urlSlug reduces a URL to a filename-safe fragment
func urlSlug(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "site"
	}

	slug := u.Host
	if p := strings.Trim(u.Path, "/"); p != "" {
		slug += "_" + strings.ReplaceAll(p, "/", "_")
	}

	slug = strings.ToLower(slug)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, slug)
}
