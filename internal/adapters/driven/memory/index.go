// Package memory provides an in-process vector index for development runs
// where PostgreSQL is not available. Vectors live in a map and queries run a
// brute-force cosine scan, which holds up fine at documentation-site scale.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/siteqa/internal/core/domain"
	"github.com/custodia-labs/siteqa/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*Index)(nil)

// Index implements driven.VectorIndex in process memory. Contents do not
// survive a restart; re-ingest to repopulate.
type Index struct {
	mu      sync.RWMutex
	vectors map[string]domain.IndexedVector
}

// NewIndex creates an empty in-memory index
func NewIndex() *Index {
	return &Index{
		vectors: make(map[string]domain.IndexedVector),
	}
}

// Upsert stores vectors, replacing entries that share an ID
func (i *Index) Upsert(ctx context.Context, vectors []domain.IndexedVector) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, v := range vectors {
		i.vectors[v.ID] = v
	}
	return nil
}

// Query returns the topK nearest vectors by cosine distance, closest first.
// Ties break on ID so results are deterministic.
func (i *Index) Query(ctx context.Context, embedding []float32, topK int) ([]domain.IndexHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	hits := make([]domain.IndexHit, 0, len(i.vectors))
	for _, v := range i.vectors {
		hits = append(hits, domain.IndexHit{
			ID:       v.ID,
			Document: v.Document,
			Metadata: v.Metadata,
			Distance: cosineDistance(embedding, v.Embedding),
		})
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].ID < hits[b].ID
	})

	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// Count returns the number of stored vectors
func (i *Index) Count(ctx context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.vectors), nil
}

// Clear discards every stored vector
func (i *Index) Clear(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.vectors = make(map[string]domain.IndexedVector)
	return nil
}

// HealthCheck always succeeds for the in-process index
func (i *Index) HealthCheck(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (i *Index) Close() error {
	return nil
}

// cosineDistance is 1 minus the cosine similarity of a and b. Mismatched
// lengths compare over the shorter prefix; zero vectors are maximally
// distant.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
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
