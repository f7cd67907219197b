// Package report computes the coverage summary for one extraction run:
// how much of the document the TOC accounts for, and how completely the
// section list maps onto the pages that carry text.
package report

import (
	"encoding/json"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dgallion1/docoutline/internal/metadata"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/section"
)

// Report is the validation summary persisted as report.json.
type Report struct {
	MetadataStatus     string  `json:"metadata_status"`
	TotalTOCEntries    int     `json:"total_toc_entries"`
	SectionsParsed     int     `json:"sections_parsed"`
	TotalPages         int     `json:"total_pages"`
	PagesWithText      int     `json:"pages_with_text"`
	TOCCoveredPages    int     `json:"toc_covered_pages"`
	PageCoveragePct    float64 `json:"page_coverage_pct"`
	TOCCoveragePct     float64 `json:"toc_coverage_pct"`
	SectionCoveragePct float64 `json:"section_coverage_pct"`
}

// Build assembles the summary from the run's artifacts.
func Build(pages []outline.PageRecord, entries []outline.TOCEntry, sections []outline.Section, meta metadata.Metadata) Report {
	pagesWithText := 0
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			pagesWithText++
		}
	}

	covered := coveredPages(entries, len(pages))

	return Report{
		MetadataStatus:     metadataStatus(meta),
		TotalTOCEntries:    len(entries),
		SectionsParsed:     len(sections),
		TotalPages:         len(pages),
		PagesWithText:      pagesWithText,
		TOCCoveredPages:    covered,
		PageCoveragePct:    percentage(pagesWithText, len(pages)),
		TOCCoveragePct:     percentage(covered, len(pages)),
		SectionCoveragePct: percentage(len(sections), pagesWithText),
	}
}

// WriteFile saves the report as indented JSON.
func (r Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func metadataStatus(meta metadata.Metadata) string {
	if meta == (metadata.Metadata{}) {
		return "Missing"
	}
	if len(metadata.Validate(meta)) == 0 {
		return "Valid"
	}
	return "Invalid/Missing"
}

// coveredPages counts pages claimed by valid TOC entry ranges.
func coveredPages(entries []outline.TOCEntry, totalPages int) int {
	valid := make([]outline.TOCEntry, 0, len(entries))
	for _, en := range entries {
		if en.Page > 0 && en.Page <= totalPages {
			valid = append(valid, en)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Page < valid[j].Page })
	return len(section.Covered(valid, totalPages))
}

func percentage(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(float64(numerator)/float64(denominator)*100*100) / 100
}
