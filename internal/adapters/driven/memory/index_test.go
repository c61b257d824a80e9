package memory

import (
	"context"
	"math"
	"testing"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

func testVectors() []domain.IndexedVector {
	return []domain.IndexedVector{
		{ID: "a_0", Document: "alpha", Embedding: []float32{1, 0}, Metadata: domain.ChunkMetadata{SourceURL: "https://docs.test/a"}},
		{ID: "b_0", Document: "beta", Embedding: []float32{0.8, 0.6}, Metadata: domain.ChunkMetadata{SourceURL: "https://docs.test/b"}},
		{ID: "c_0", Document: "gamma", Embedding: []float32{0, 1}, Metadata: domain.ChunkMetadata{SourceURL: "https://docs.test/c"}},
	}
}

func TestIndex_QueryOrdersByDistance(t *testing.T) {
	idx := NewIndex()
	if err := idx.Upsert(context.Background(), testVectors()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	hits, err := idx.Query(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if len(hits) != 3 {
		t.Fatalf("len(hits) = %d, want 3", len(hits))
	}
	wantOrder := []string{"a_0", "b_0", "c_0"}
	for i, want := range wantOrder {
		if hits[i].ID != want {
			t.Errorf("hits[%d].ID = %s, want %s", i, hits[i].ID, want)
		}
	}

	// [1,0] against itself is distance zero; against [0.8,0.6] it is 0.2
	if hits[0].Distance > 1e-9 {
		t.Errorf("exact match distance = %v, want 0", hits[0].Distance)
	}
	if math.Abs(hits[1].Distance-0.2) > 1e-6 {
		t.Errorf("hits[1].Distance = %v, want 0.2", hits[1].Distance)
	}
}

func TestIndex_QueryHonoursTopK(t *testing.T) {
	idx := NewIndex()
	if err := idx.Upsert(context.Background(), testVectors()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	hits, err := idx.Query(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("len(hits) = %d, want 2", len(hits))
	}
}

func TestIndex_UpsertReplacesByID(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	if err := idx.Upsert(ctx, testVectors()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	replacement := []domain.IndexedVector{
		{ID: "a_0", Document: "alpha rewritten", Embedding: []float32{1, 0}},
	}
	if err := idx.Upsert(ctx, replacement); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	count, _ := idx.Count(ctx)
	if count != 3 {
		t.Errorf("Count() = %d, want 3 after replacing an existing ID", count)
	}

	hits, err := idx.Query(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if hits[0].Document != "alpha rewritten" {
		t.Errorf("Document = %q, want the replacement text", hits[0].Document)
	}
}

func TestIndex_Clear(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	if err := idx.Upsert(ctx, testVectors()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := idx.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	count, err := idx.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d after Clear, want 0", count)
	}
}

func TestIndex_ZeroVectorIsMaximallyDistant(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	vectors := []domain.IndexedVector{
		{ID: "zero_0", Document: "empty", Embedding: []float32{0, 0}},
	}
	if err := idx.Upsert(ctx, vectors); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	hits, err := idx.Query(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if hits[0].Distance != 1 {
		t.Errorf("Distance = %v, want 1 for a zero vector", hits[0].Distance)
	}
}

func TestIndex_HealthCheck(t *testing.T) {
	idx := NewIndex()
	if err := idx.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
