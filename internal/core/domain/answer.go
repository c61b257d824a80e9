package domain

import "time"

// NoInformationAnswer is the fixed reply returned when retrieval finds
// nothing relevant; no generation call is made in that case.
const NoInformationAnswer = "I don't have any information to answer that question."

// Source identifies one cited page. Sources are deduplicated by URL in order
// of first appearance among retrieved chunks, so the highest-similarity
// occurrence wins.
type Source struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Relevance float64 `json:"relevance_score"`
}

// Answer is the outcome of one question. Success is false for business-level
// misses (empty retrieval, generation failure); those still produce a normal
// answer payload rather than a transport error.
type Answer struct {
	Question    string        `json:"question"`
	Text        string        `json:"answer"`
	Sources     []Source      `json:"sources"`
	Success     bool          `json:"success"`
	NumContexts int           `json:"num_contexts_used"`
	Retrieval   time.Duration `json:"retrieval_time" swaggertype:"integer" example:"120000000"`
	Generation  time.Duration `json:"generation_time" swaggertype:"integer" example:"900000000"`
	Total       time.Duration `json:"total_time" swaggertype:"integer" example:"1020000000"`
}
