// Package section assembles the final, fully-partitioned section list:
// TOC-derived sections built from entry page ranges, plus standalone
// sections for every leftover non-empty page.
package section

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// PageIndex gives O(1) access to page text by page number and slices text
// across page ranges. Built once per extraction run.
type PageIndex struct {
	total int
	text  map[int]string
}

// NewPageIndex indexes the given records. The page count is the number of
// records, which matches the highest page number for the contiguous inputs
// page sources produce.
func NewPageIndex(pages []outline.PageRecord) *PageIndex {
	idx := &PageIndex{
		total: len(pages),
		text:  make(map[int]string, len(pages)),
	}
	for _, p := range pages {
		idx.text[p.Page] = p.Text
	}
	return idx
}

// TotalPages returns the number of indexed pages.
func (x *PageIndex) TotalPages() int { return x.total }

// Text returns the raw text of a page, or empty for a missing page.
func (x *PageIndex) Text(page int) string { return x.text[page] }

// ContentRange concatenates page texts from start to end inclusive, joined
// with newlines and trimmed. The range is clamped to [1, TotalPages].
func (x *PageIndex) ContentRange(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > x.total {
		end = x.total
	}
	if end < start {
		return ""
	}
	parts := make([]string, 0, end-start+1)
	for p := start; p <= end; p++ {
		parts = append(parts, x.text[p])
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
