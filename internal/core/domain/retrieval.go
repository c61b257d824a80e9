package domain

import "time"

// ScoredChunk pairs a retrieved chunk with its similarity to the query.
// Similarity is 1 - cosineDistance; conceptually [0,1] but not clamped, so
// floating point can push it slightly outside that range.
type ScoredChunk struct {
	Document   string        `json:"document"`
	Metadata   ChunkMetadata `json:"metadata"`
	Similarity float64       `json:"similarity"`
}

// RetrievalResult is the outcome of one query against the vector index,
// sorted by descending similarity. Ephemeral; never persisted.
type RetrievalResult struct {
	Query  string        `json:"query"`
	Chunks []ScoredChunk `json:"chunks"`
	Took   time.Duration `json:"took" swaggertype:"integer" example:"1500000"`
}
