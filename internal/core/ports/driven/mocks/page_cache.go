package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// MockPageCache is a mock implementation of PageCache for testing
type MockPageCache struct {
	mu    sync.RWMutex
	pages map[string][]domain.Page
	saves int
}

// NewMockPageCache creates a new MockPageCache
func NewMockPageCache() *MockPageCache {
	return &MockPageCache{
		pages: make(map[string][]domain.Page),
	}
}

func (m *MockPageCache) Save(ctx context.Context, baseURL string, pages []domain.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[baseURL] = append([]domain.Page(nil), pages...)
	m.saves++
	return nil
}

func (m *MockPageCache) Load(ctx context.Context, baseURL string) ([]domain.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pages, ok := m.pages[baseURL]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return pages, nil
}

func (m *MockPageCache) Clear(ctx context.Context, baseURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, baseURL)
	return nil
}

// Helper methods for testing

func (m *MockPageCache) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
