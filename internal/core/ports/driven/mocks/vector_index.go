package mocks

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// MockVectorIndex is a mock implementation of VectorIndex for testing.
// Queries run a brute-force cosine scan over the stored vectors.
type MockVectorIndex struct {
	mu       sync.RWMutex
	vectors  map[string]domain.IndexedVector
	failNext bool
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		vectors: make(map[string]domain.IndexedVector),
	}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, vectors []domain.IndexedVector) error {
	if m.takeFailure() {
		return context.DeadlineExceeded
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range vectors {
		m.vectors[v.ID] = v
	}
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, embedding []float32, topK int) ([]domain.IndexHit, error) {
	if m.takeFailure() {
		return nil, context.DeadlineExceeded
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]domain.IndexHit, 0, len(m.vectors))
	for _, v := range m.vectors {
		hits = append(hits, domain.IndexHit{
			ID:       v.ID,
			Document: v.Document,
			Metadata: v.Metadata,
			Distance: cosineDistance(embedding, v.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance == hits[j].Distance {
			return hits[i].ID < hits[j].ID
		}
		return hits[i].Distance < hits[j].Distance
	})
	if topK >= 0 && topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

func (m *MockVectorIndex) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vectors), nil
}

func (m *MockVectorIndex) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors = make(map[string]domain.IndexedVector)
	return nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MockVectorIndex) Close() error {
	return nil
}

func (m *MockVectorIndex) takeFailure() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return true
	}
	return false
}

func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// Helper methods for testing

func (m *MockVectorIndex) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}
