// Package outline defines the shared data model for document structure
// extraction. It has no dependencies on other docoutline packages to avoid
// import cycles.
package outline

import "strings"

// PageRecord is one page of extracted document text. Records are produced
// by a page source (PDF, text, markdown, ...) and are read-only input to
// the extraction core.
type PageRecord struct {
	Page int    `json:"page"` // 1-based page number, unique per document
	Text string `json:"text"`
}

// TOCEntry is a recognized table-of-contents entry with a page anchor.
// SectionID is the hierarchical dot-separated id ("3.2.1"), or empty for
// unnumbered entries recovered by fallback passes.
type TOCEntry struct {
	DocTitle  string   `json:"doc_title"`
	SectionID string   `json:"section_id"`
	Title     string   `json:"title"`
	Page      int      `json:"page"`
	Level     int      `json:"level"`
	ParentID  string   `json:"parent_id"`
	FullPath  string   `json:"full_path"` // original source line
	Tags      []string `json:"tags"`
}

// SectionKind distinguishes the two creation paths for a Section.
type SectionKind string

const (
	// KindTOC marks a section derived from a TOC entry and its page range.
	KindTOC SectionKind = "toc"
	// KindPage marks a standalone section synthesized from a single page
	// not claimed by any TOC entry.
	KindPage SectionKind = "page"
)

// Section is a titled, page-addressable content unit of the final output.
// Sections with Kind == KindPage use a synthetic "Page-<n>" section id;
// Kind, not the id string, is what makes the two variants disjoint.
type Section struct {
	Kind      SectionKind `json:"kind"`
	DocTitle  string      `json:"doc_title"`
	SectionID string      `json:"section_id"`
	Title     string      `json:"title"`
	FullPath  string      `json:"full_path"`
	Page      int         `json:"page"`
	Level     int         `json:"level"`
	ParentID  string      `json:"parent_id"`
	Tags      []string    `json:"tags"`
	Content   string      `json:"content"`
}

// Level returns the hierarchical depth implied by a section id: the number
// of dot-separated components, or 1 for an empty id.
func Level(sectionID string) int {
	if sectionID == "" {
		return 1
	}
	return strings.Count(sectionID, ".") + 1
}

// ParentID returns the section id minus its last dot-separated component,
// or empty if the id has no dot.
func ParentID(sectionID string) string {
	idx := strings.LastIndex(sectionID, ".")
	if idx < 0 {
		return ""
	}
	return sectionID[:idx]
}
