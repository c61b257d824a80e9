package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrIngestInProgress indicates an ingestion is already running
	ErrIngestInProgress = errors.New("ingestion already in progress")

	// ErrEmptyIndex indicates the vector index holds no documents yet
	ErrEmptyIndex = errors.New("knowledge base is empty")

	// ErrNoPagesCrawled indicates a crawl finished without collecting any pages
	ErrNoPagesCrawled = errors.New("no pages crawled")

	// ErrServiceUnavailable indicates an external service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
