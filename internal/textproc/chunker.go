package textproc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

// minChunkChars is the smallest viable chunk; shorter slices are noise.
const minChunkChars = 50

// Chunker splits cleaned text into overlapping fixed-size windows, snapping
// to a sentence boundary when one falls past the window midpoint. Sizes and
// offsets are measured in characters, not bytes.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker validates the window configuration. Overlap must stay below the
// chunk size; otherwise the progress guard degrades every window to
// non-overlapping, so the configuration is rejected instead of silently
// misbehaving.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must be non-negative, got %d", domain.ErrInvalidInput, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d", domain.ErrInvalidInput, overlap, chunkSize)
	}
	return &Chunker{size: chunkSize, overlap: overlap}, nil
}

// Size returns the configured window size in characters.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured window overlap in characters.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into overlapping windows of up to the configured size.
// Text shorter than 50 characters produces no chunks, and any window that
// trims below 50 characters is discarded. Non-final windows cut at the last
// ". ", "! " or "? " in the window, falling back to the last newline, but
// only when that boundary lies past the window midpoint. The next window
// starts overlap characters before the previous end; when that would not
// advance past the previous start it is forced to the previous end so the
// walk always makes progress.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) < minChunkChars {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		if end < len(runes) {
			if cut := lastBreak(runes[start:end]); cut != -1 && cut > c.size/2 {
				end = start + cut + 1
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if utf8.RuneCountInString(chunk) > minChunkChars {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// lastBreak returns the offset of the rightmost sentence terminator followed
// by a space, falling back to the rightmost newline, or -1 when the window
// holds neither.
func lastBreak(window []rune) int {
	for i := len(window) - 2; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			if window[i+1] == ' ' {
				return i
			}
		}
	}
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '\n' {
			return i
		}
	}
	return -1
}
