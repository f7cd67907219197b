package section

import "github.com/dgallion1/docoutline/internal/outline"

// EntryRange computes the page range owned by entry i of a page-sorted
// entry list: from its own page up to the page before the next entry, or
// to the last document page for the final entry. The end is never below
// the start.
func EntryRange(entries []outline.TOCEntry, i, totalPages int) (start, end int) {
	start = entries[i].Page
	if i+1 < len(entries) {
		end = entries[i+1].Page - 1
	} else {
		end = totalPages
	}
	if end < start {
		end = start
	}
	return start, end
}

// Covered returns the set of pages claimed by the TOC entries' ranges.
// Entries must already be sorted ascending by page.
func Covered(entries []outline.TOCEntry, totalPages int) map[int]bool {
	covered := make(map[int]bool)
	for i := range entries {
		start, end := EntryRange(entries, i, totalPages)
		for p := start; p <= end; p++ {
			covered[p] = true
		}
	}
	return covered
}
