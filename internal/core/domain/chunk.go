package domain

import "strconv"

// Chunk represents one contiguous (possibly overlapping) slice of a page's
// cleaned text. Index is 0-based and unique within SourceURL, ranging over
// [0, TotalChunks) with no gaps.
type Chunk struct {
	Text        string `json:"text"`
	SourceURL   string `json:"source_url"`
	SourceTitle string `json:"source_title"`
	Index       int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	CharCount   int    `json:"char_count"`
}

// VectorID returns the storage identity for the chunk. Re-ingesting the same
// URL overwrites only colliding IDs, which is why ingestion clears the
// collection before repopulating it.
func (c Chunk) VectorID() string {
	return c.SourceURL + "_" + strconv.Itoa(c.Index)
}

// Metadata returns the non-text chunk fields carried into the vector index.
func (c Chunk) Metadata() ChunkMetadata {
	return ChunkMetadata{
		SourceURL:   c.SourceURL,
		SourceTitle: c.SourceTitle,
		Index:       c.Index,
		TotalChunks: c.TotalChunks,
		CharCount:   c.CharCount,
	}
}

// ChunkMetadata is the typed metadata stored alongside each vector.
type ChunkMetadata struct {
	SourceURL   string `json:"url"`
	SourceTitle string `json:"title"`
	Index       int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
	CharCount   int    `json:"char_count"`
}

// IndexedVector is the persisted unit inside the vector index: the embedding,
// the retrievable document text, and the chunk metadata under a composite ID.
type IndexedVector struct {
	ID        string        `json:"id"`
	Embedding []float32     `json:"embedding"`
	Document  string        `json:"document"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// IndexHit is one nearest-neighbour match returned by the vector index.
// Distance is cosine distance; similarity is derived as 1 - Distance.
type IndexHit struct {
	ID       string        `json:"id"`
	Document string        `json:"document"`
	Metadata ChunkMetadata `json:"metadata"`
	Distance float64       `json:"distance"`
}
