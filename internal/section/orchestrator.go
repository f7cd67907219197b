package section

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/heading"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/toc"
)

// Status names the phase an extraction run is in. Exposed for handlers and
// the pipeline to report progress.
type Status string

const (
	StatusIdle                 Status = "idle"
	StatusValidating           Status = "validating"
	StatusExtractingTOC        Status = "extracting_toc_sections"
	StatusMappingCoverage      Status = "mapping_coverage"
	StatusExtractingStandalone Status = "extracting_standalone_sections"
	StatusSorting              Status = "sorting"
	StatusDone                 Status = "done"
	StatusFailed               Status = "failed"
)

// Stats summarizes one extraction run. Returned by value so repeated runs
// on a shared Extractor stay independent.
type Stats struct {
	TotalPages         int       `json:"total_pages"`
	TOCSections        int       `json:"toc_sections"`
	StandaloneSections int       `json:"standalone_sections"`
	CoveredPages       int       `json:"covered_pages"`
	SkippedEntries     int       `json:"skipped_entries"`
	SkippedPages       int       `json:"skipped_pages"`
	TOC                toc.Stats `json:"toc"`
}

// validationSample is how many leading records the input check inspects.
const validationSample = 5

// Extractor runs the full section extraction: TOC entries to page ranges,
// leftover pages to standalone sections, one sorted list out.
type Extractor struct {
	cfg       config.Config
	log       *slog.Logger
	assembler *Assembler
	detector  *heading.Detector
	tocX      *toc.Extractor

	status Status
	runs   int
}

// NewExtractor wires an extractor for one document title. docTitle may be
// empty to use the configured default.
func NewExtractor(cfg config.Config, docTitle string, log *slog.Logger) *Extractor {
	if docTitle == "" {
		docTitle = cfg.DocTitle
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		cfg:       cfg,
		log:       log,
		assembler: NewAssembler(docTitle),
		detector:  heading.NewDetector(),
		tocX:      toc.New(cfg, docTitle, log),
		status:    StatusIdle,
	}
}

// Status returns the phase of the most recent (or current) run.
func (e *Extractor) Status() Status { return e.status }

// Extract produces the complete section list for the document. When
// entries is nil the TOC is extracted from the pages; a non-nil slice
// (even empty) bypasses TOC extraction, for cached or edited tables of
// contents. Per-entry and per-page failures are logged and skipped; only
// a structurally invalid pages argument aborts the run.
func (e *Extractor) Extract(pages []outline.PageRecord, entries []outline.TOCEntry) ([]outline.Section, Stats, error) {
	var stats Stats

	e.status = StatusValidating
	if err := e.validate(pages); err != nil {
		e.status = StatusFailed
		return nil, stats, err
	}

	if entries == nil {
		entries, stats.TOC = e.tocX.Extract(pages)
	}

	idx := NewPageIndex(pages)
	stats.TotalPages = idx.TotalPages()

	sorted := make([]outline.TOCEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Page < sorted[j].Page })

	valid := sorted[:0]
	for _, en := range sorted {
		if en.Page < 1 || en.Page > idx.TotalPages() {
			stats.SkippedEntries++
			e.log.Warn("skipping TOC entry outside document", "title", en.Title, "page", en.Page)
			continue
		}
		valid = append(valid, en)
	}

	e.status = StatusExtractingTOC
	sections := make([]outline.Section, 0, len(valid))
	for i := range valid {
		start, end := EntryRange(valid, i, idx.TotalPages())
		sec, err := e.assembler.FromTOCEntry(valid[i], idx.ContentRange(start, end))
		if err != nil {
			stats.SkippedEntries++
			e.log.Warn("skipping malformed TOC entry", "error", err)
			continue
		}
		sections = append(sections, sec)
		stats.TOCSections++
	}

	e.status = StatusMappingCoverage
	covered := Covered(valid, idx.TotalPages())
	stats.CoveredPages = len(covered)

	e.status = StatusExtractingStandalone
	for page := 1; page <= idx.TotalPages(); page++ {
		if covered[page] {
			continue
		}
		text := strings.TrimSpace(idx.Text(page))
		if text == "" {
			stats.SkippedPages++
			continue
		}
		sections = append(sections, e.assembler.PageSection(page, text, e.pageHeading(page, text)))
		stats.StandaloneSections++
	}

	e.status = StatusSorting
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Page != sections[j].Page {
			return sections[i].Page < sections[j].Page
		}
		return sections[i].SectionID < sections[j].SectionID
	})

	e.status = StatusDone
	e.runs++
	return sections, stats, nil
}

// validate samples the first few records for structural sanity. Empty
// input is a valid document with no pages, not an error.
func (e *Extractor) validate(pages []outline.PageRecord) error {
	if !e.cfg.ValidationEnabled {
		return nil
	}
	for i, p := range pages {
		if i >= validationSample {
			break
		}
		if p.Page < 1 {
			return &InputValidationError{
				Reason: fmt.Sprintf("record %d has page number %d", i, p.Page),
			}
		}
	}
	return nil
}

// pageHeading finds a title for a standalone page: the first of the
// leading non-empty lines a heading strategy accepts, else the first line
// when it is short enough to read as one, else a page-number label.
func (e *Extractor) pageHeading(page int, text string) string {
	var candidates []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			candidates = append(candidates, line)
			if len(candidates) == e.cfg.HeadingScanDepth {
				break
			}
		}
	}
	for _, line := range candidates {
		if m, ok := e.detector.Detect(line); ok {
			return m.Heading
		}
	}
	if len(candidates) > 0 && len(candidates[0]) <= 80 {
		return candidates[0]
	}
	return fmt.Sprintf("Content from Page %d", page)
}
