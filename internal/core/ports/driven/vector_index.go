package driven

import (
	"context"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// VectorIndex stores chunk embeddings and serves nearest-neighbour queries
type VectorIndex interface {
	// Upsert inserts or replaces vectors by ID
	Upsert(ctx context.Context, vectors []domain.IndexedVector) error

	// Query returns the topK nearest stored vectors by cosine distance,
	// closest first
	Query(ctx context.Context, embedding []float32, topK int) ([]domain.IndexHit, error)

	// Count reports the number of stored vectors
	Count(ctx context.Context) (int, error)

	// Clear removes every stored vector
	Clear(ctx context.Context) error

	// HealthCheck verifies the index is reachable
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the index
	Close() error
}
