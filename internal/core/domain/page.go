package domain

// Page represents one crawled document with its cleaned visible text.
// Pages are produced by the crawler and consumed by the chunking pipeline;
// they are immutable once produced and are not persisted beyond the
// optional page cache.
type Page struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
