package pgvector

import (
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/siteqa/internal/core/domain"
)

func TestNewIndex_CollectionNames(t *testing.T) {
	testCases := []struct {
		name       string
		collection string
		valid      bool
	}{
		{"default collection", "website_docs", true},
		{"leading underscore", "_docs", true},
		{"digits after first char", "docs2", true},
		{"max length", strings.Repeat("a", 63), true},
		{"empty", "", false},
		{"uppercase", "WebsiteDocs", false},
		{"leading digit", "2docs", false},
		{"hyphen", "website-docs", false},
		{"injection attempt", "docs; drop table users", false},
		{"too long", strings.Repeat("a", 64), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			idx, err := NewIndex(nil, tc.collection, 1536)
			if tc.valid {
				if err != nil {
					t.Fatalf("NewIndex(%q) error = %v", tc.collection, err)
				}
				if idx.Collection() != tc.collection {
					t.Errorf("Collection() = %q", idx.Collection())
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("NewIndex(%q) error = %v, want ErrInvalidInput", tc.collection, err)
			}
		})
	}
}

func TestNewIndex_RejectsBadDimensions(t *testing.T) {
	for _, dims := range []int{0, -1} {
		if _, err := NewIndex(nil, "website_docs", dims); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("NewIndex(dims=%d) error = %v, want ErrInvalidInput", dims, err)
		}
	}
}

func TestIndex_TableQuoting(t *testing.T) {
	idx, err := NewIndex(nil, "website_docs", 1536)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	// The name is interpolated into SQL, so it must come back quoted
	if got := idx.table(); got != `"website_docs"` {
		t.Errorf("table() = %s, want quoted identifier", got)
	}
}

func TestIndex_Close(t *testing.T) {
	idx, err := NewIndex(nil, "website_docs", 1536)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
