package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// minPageContent is the smallest extracted text worth keeping; thinner pages
// are visited but not collected.
const minPageContent = 100

// defaultUserAgent mimics a desktop browser; some documentation hosts serve
// reduced markup to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Config holds crawler configuration.
type Config struct {
	// BaseURL is the starting URL; the crawl never leaves its host.
	BaseURL string

	// MaxPages caps the number of URLs taken off the frontier, including
	// failed and thin pages.
	MaxPages int

	// Delay is the politeness pause between consecutive fetches. Zero
	// disables pacing.
	Delay time.Duration

	// Timeout for individual page fetches.
	Timeout time.Duration

	// UserAgent sent with every request.
	UserAgent string
}

// DefaultConfig returns sensible defaults for a small documentation crawl.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		MaxPages:  50,
		Delay:     time.Second,
		Timeout:   10 * time.Second,
		UserAgent: defaultUserAgent,
	}
}

// Crawler walks a single site breadth-first, extracting the visible text and
// outbound links of each page.
type Crawler struct {
	cfg     Config
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a crawler for the configured base URL.
func New(cfg Config, logger *slog.Logger) (*Crawler, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("%w: base URL must be an absolute http(s) URL", domain.ErrInvalidInput)
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 50
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Limit(rate.Inf)
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	return &Crawler{
		cfg:     cfg,
		base:    base,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// Crawl walks the site breadth-first from the base URL. The loop continues
// while the frontier is non-empty and fewer than MaxPages URLs have been
// visited; fetch failures and thin pages consume budget but are dropped, and
// only retained pages contribute new links. Returns the collected pages when
// the budget or frontier is exhausted; the only error condition is context
// cancellation.
func (c *Crawler) Crawl(ctx context.Context) ([]domain.Page, error) {
	frontier := []string{c.cfg.BaseURL}
	queued := map[string]bool{c.cfg.BaseURL: true}
	visited := make(map[string]bool)
	var collected []domain.Page

	c.logger.Info("starting crawl",
		"base_url", c.cfg.BaseURL,
		"max_pages", c.cfg.MaxPages,
		"delay", c.cfg.Delay)

	for len(frontier) > 0 && len(visited) < c.cfg.MaxPages {
		pageURL := frontier[0]
		frontier = frontier[1:]
		delete(queued, pageURL)

		if visited[pageURL] {
			continue
		}
		visited[pageURL] = true

		// The limiter starts with one token, so the first fetch is
		// immediate and later fetches are spaced by the delay. Nothing
		// waits after the final fetch.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		c.logger.Info("crawling page", "url", pageURL, "visited", len(visited), "max_pages", c.cfg.MaxPages)

		page, links, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("fetch failed, skipping page", "url", pageURL, "error", err)
			continue
		}

		if utf8.RuneCountInString(page.Content) <= minPageContent {
			c.logger.Debug("skipping page with insufficient content",
				"url", pageURL, "chars", utf8.RuneCountInString(page.Content))
			continue
		}

		collected = append(collected, page)

		for _, link := range links {
			if !visited[link] && !queued[link] {
				frontier = append(frontier, link)
				queued[link] = true
			}
		}
	}

	c.logger.Info("crawl complete", "pages_collected", len(collected), "urls_visited", len(visited))
	return collected, nil
}

// fetchPage fetches and parses one page, returning its cleaned text and the
// candidate links found in the raw document. Non-2xx responses and non-HTML
// content types are errors; the caller treats them as skips.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (domain.Page, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.Page{}, nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Page{}, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Page{}, nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return domain.Page{}, nil, fmt.Errorf("non-HTML content type %q", contentType)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Page{}, nil, fmt.Errorf("parse HTML: %w", err)
	}

	// Title and links come from the raw document; noise stripping would
	// otherwise remove nav links and meta titles before they are read.
	title := extractTitle(doc, pageURL)
	links := c.extractLinks(doc, pageURL)

	removeNoise(doc)
	text := extractText(doc)

	return domain.Page{URL: pageURL, Title: title, Content: text}, links, nil
}
