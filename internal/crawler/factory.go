package crawler

import (
	"log/slog"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// Ensure Factory implements PageSourceFactory
var _ driven.PageSourceFactory = (*Factory)(nil)

// Ensure Crawler implements PageSource
var _ driven.PageSource = (*Crawler)(nil)

// Factory builds crawlers from ingestion options.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a crawler factory.
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds a crawler for one ingestion run.
func (f *Factory) Create(opts domain.IngestOptions) (driven.PageSource, error) {
	cfg := DefaultConfig(opts.BaseURL)
	if opts.MaxPages > 0 {
		cfg.MaxPages = opts.MaxPages
	}
	if opts.CrawlDelay > 0 {
		cfg.Delay = opts.CrawlDelay
	}
	return New(cfg, f.logger)
}
