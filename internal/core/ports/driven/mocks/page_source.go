package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// MockPageSource is a mock implementation of PageSource for testing
type MockPageSource struct {
	mu    sync.Mutex
	pages []domain.Page
	err   error
	calls int

	// Release, when non-nil, blocks Crawl until the channel is closed so
	// tests can hold an ingestion in flight
	Release chan struct{}
}

// NewMockPageSource creates a new MockPageSource returning the given pages
func NewMockPageSource(pages []domain.Page) *MockPageSource {
	return &MockPageSource{pages: pages}
}

func (m *MockPageSource) Crawl(ctx context.Context) ([]domain.Page, error) {
	m.mu.Lock()
	m.calls++
	release := m.Release
	err := m.err
	pages := append([]domain.Page(nil), m.pages...)
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	return pages, nil
}

// Helper methods for testing

func (m *MockPageSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPageSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockPageSourceFactory is a mock implementation of PageSourceFactory that
// hands out a fixed source for every run
type MockPageSourceFactory struct {
	mu     sync.Mutex
	source driven.PageSource
	err    error

	// LastOpts records the options of the most recent Create call
	LastOpts domain.IngestOptions
}

// NewMockPageSourceFactory creates a new MockPageSourceFactory
func NewMockPageSourceFactory(source driven.PageSource) *MockPageSourceFactory {
	return &MockPageSourceFactory{source: source}
}

func (f *MockPageSourceFactory) Create(opts domain.IngestOptions) (driven.PageSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.source, nil
}

// Helper methods for testing

func (f *MockPageSourceFactory) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
