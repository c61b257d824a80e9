package textproc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

func testPages() []domain.Page {
	long := strings.Repeat("The quick brown fox jumps over the lazy dog near the river bank. ", 8)
	return []domain.Page{
		{URL: "https://example.com/a", Title: "Page A", Content: long},
		{URL: "https://example.com/b", Title: "Page B", Content: "Too short."},
		{URL: "https://example.com/c", Title: "Page C", Content: long + long},
	}
}

func TestProcessPages_SkipsShortPages(t *testing.T) {
	p, err := NewProcessor(200, 50, nil)
	if err != nil {
		t.Fatalf("unexpected processor error: %v", err)
	}

	chunks, stats := p.ProcessPages(testPages())

	if stats.PagesSkipped != 1 {
		t.Errorf("expected 1 skipped page, got %d", stats.PagesSkipped)
	}
	if stats.PagesProcessed != 2 {
		t.Errorf("expected 2 processed pages, got %d", stats.PagesProcessed)
	}
	if stats.ChunksCreated != len(chunks) {
		t.Errorf("expected ChunksCreated %d to match chunk count %d", stats.ChunksCreated, len(chunks))
	}
	for _, chunk := range chunks {
		if chunk.SourceURL == "https://example.com/b" {
			t.Error("expected short page to produce no chunks")
		}
	}
}

func TestProcessPages_StampsMetadata(t *testing.T) {
	p, err := NewProcessor(200, 50, nil)
	if err != nil {
		t.Fatalf("unexpected processor error: %v", err)
	}

	chunks, _ := p.ProcessPages(testPages())
	if len(chunks) == 0 {
		t.Fatal("expected chunks to be produced")
	}

	// Chunk indices must be 0-based, unique and gapless per source URL,
	// and every chunk of a source must agree on TotalChunks.
	perSource := make(map[string][]domain.Chunk)
	for _, chunk := range chunks {
		if chunk.SourceTitle == "" {
			t.Errorf("chunk %s has no source title", chunk.VectorID())
		}
		if chunk.CharCount != utf8.RuneCountInString(chunk.Text) {
			t.Errorf("chunk %s CharCount %d does not match text length %d",
				chunk.VectorID(), chunk.CharCount, utf8.RuneCountInString(chunk.Text))
		}
		perSource[chunk.SourceURL] = append(perSource[chunk.SourceURL], chunk)
	}

	for url, group := range perSource {
		seen := make(map[int]bool)
		for _, chunk := range group {
			if chunk.TotalChunks != len(group) {
				t.Errorf("%s: TotalChunks %d does not match group size %d", url, chunk.TotalChunks, len(group))
			}
			if chunk.Index < 0 || chunk.Index >= len(group) {
				t.Errorf("%s: index %d out of range [0,%d)", url, chunk.Index, len(group))
			}
			if seen[chunk.Index] {
				t.Errorf("%s: duplicate chunk index %d", url, chunk.Index)
			}
			seen[chunk.Index] = true
		}
	}
}

func TestProcessPages_AllSkipped(t *testing.T) {
	p, err := NewProcessor(1000, 200, nil)
	if err != nil {
		t.Fatalf("unexpected processor error: %v", err)
	}

	chunks, stats := p.ProcessPages([]domain.Page{
		{URL: "https://example.com/x", Title: "X", Content: "tiny"},
		{URL: "https://example.com/y", Title: "Y", Content: "also tiny"},
	})

	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
	if stats.PagesSkipped != 2 || stats.PagesProcessed != 0 {
		t.Errorf("expected all pages skipped, got %+v", stats)
	}
}

func TestProcessPages_CleansBeforeChunking(t *testing.T) {
	p, err := NewProcessor(200, 50, nil)
	if err != nil {
		t.Fatalf("unexpected processor error: %v", err)
	}

	noisy := strings.Repeat("Useful sentence about the documented behaviour of the system. Visit https://spam.example.com now. ", 5)
	chunks, _ := p.ProcessPages([]domain.Page{
		{URL: "https://example.com/noisy", Title: "Noisy", Content: noisy},
	})

	if len(chunks) == 0 {
		t.Fatal("expected chunks from the noisy page")
	}
	for _, chunk := range chunks {
		if strings.Contains(chunk.Text, "https://") {
			t.Errorf("expected URLs to be cleaned out, found one in %q", chunk.Text)
		}
	}
}

func TestStatistics(t *testing.T) {
	chunks := []domain.Chunk{
		{SourceURL: "https://example.com/a", CharCount: 100},
		{SourceURL: "https://example.com/a", CharCount: 200},
		{SourceURL: "https://example.com/b", CharCount: 300},
	}

	stats := Statistics(chunks)

	if stats.TotalChunks != 3 {
		t.Errorf("expected 3 total chunks, got %d", stats.TotalChunks)
	}
	if stats.UniqueDocuments != 2 {
		t.Errorf("expected 2 unique documents, got %d", stats.UniqueDocuments)
	}
	if stats.AvgChunkSize != 200 {
		t.Errorf("expected average 200, got %f", stats.AvgChunkSize)
	}
	if stats.MinChunkSize != 100 || stats.MaxChunkSize != 300 {
		t.Errorf("expected min 100 max 300, got %d/%d", stats.MinChunkSize, stats.MaxChunkSize)
	}
}

func TestStatistics_Empty(t *testing.T) {
	stats := Statistics(nil)
	if stats.TotalChunks != 0 || stats.UniqueDocuments != 0 || stats.AvgChunkSize != 0 {
		t.Errorf("expected zero statistics, got %+v", stats)
	}
}
