package section

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// Assembler builds Section values for both creation paths. It holds only
// the document title; all per-run state lives with the caller.
type Assembler struct {
	docTitle string
}

func NewAssembler(docTitle string) *Assembler {
	return &Assembler{docTitle: docTitle}
}

// FromTOCEntry builds a TOC-derived section from an entry and its
// page-range content slice. Malformed entries are reported, not repaired.
func (a *Assembler) FromTOCEntry(entry outline.TOCEntry, content string) (outline.Section, error) {
	if entry.Page < 1 {
		return outline.Section{}, fmt.Errorf("entry %q has invalid page %d", entry.Title, entry.Page)
	}
	if strings.TrimSpace(entry.Title) == "" {
		return outline.Section{}, fmt.Errorf("entry on page %d has empty title", entry.Page)
	}
	return outline.Section{
		Kind:      outline.KindTOC,
		DocTitle:  a.docTitle,
		SectionID: entry.SectionID,
		Title:     entry.Title,
		FullPath:  entry.FullPath,
		Page:      entry.Page,
		Level:     entry.Level,
		ParentID:  entry.ParentID,
		Tags:      entry.Tags,
		Content:   content,
	}, nil
}

// PageSection builds a standalone section for a page no TOC entry claimed.
// An empty heading falls back to a page-number label.
func (a *Assembler) PageSection(page int, content, heading string) outline.Section {
	title := strings.TrimSpace(heading)
	if title == "" {
		title = fmt.Sprintf("Page %d", page)
	}
	id := fmt.Sprintf("Page-%d", page)
	return outline.Section{
		Kind:      outline.KindPage,
		DocTitle:  a.docTitle,
		SectionID: id,
		Title:     title,
		FullPath:  id + " " + title,
		Page:      page,
		Level:     1,
		Content:   content,
	}
}
