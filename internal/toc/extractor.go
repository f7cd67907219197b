// Package toc recognizes, validates and deduplicates table-of-contents
// entries in a stream of page text records. Extraction is layered: a
// high-precision pattern pass, a broader recovery pass over unclaimed
// lines, and a scored fallback pass for lines no pattern could claim.
package toc

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
)

// Stats reports what a single extraction pass did. It is returned by value
// so the Extractor itself stays stateless and safe for concurrent use.
type Stats struct {
	EntriesFound      int            `json:"entries_found"`
	PatternsUsed      map[string]int `json:"patterns_used"`
	EnhancedEntries   int            `json:"enhanced_entries"`
	FallbackEntries   int            `json:"fallback_entries"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	InvalidFiltered   int            `json:"invalid_filtered"`
	MalformedPages    int            `json:"malformed_pages"`
}

// Extractor converts page records into validated TOC entries.
type Extractor struct {
	cfg       config.Config
	docTitle  string
	log       *slog.Logger
	tocMarker []*regexp.Regexp
}

// New builds an extractor. docTitle is stamped onto every produced entry;
// when empty the configured default is used.
func New(cfg config.Config, docTitle string, log *slog.Logger) *Extractor {
	if docTitle == "" {
		docTitle = cfg.DocTitle
	}
	if log == nil {
		log = slog.Default()
	}
	markers := make([]*regexp.Regexp, 0, len(cfg.TOCKeywords))
	for _, kw := range cfg.TOCKeywords {
		markers = append(markers, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return &Extractor{cfg: cfg, docTitle: docTitle, log: log, tocMarker: markers}
}

// pageLine is one text line paired with the page it came from.
type pageLine struct {
	page int
	text string
}

// candidate is a line that failed pattern matching but still ends in a
// plausible page number; it is kept for the fallback pass.
type candidate struct {
	line       string
	title      string
	page       int
	sourcePage int
	confidence float64
}

// match is the normalized result of a primary pattern hit.
type match struct {
	sectionID string
	title     string
	page      int
	fullPath  string
}

// Extract runs the full layered extraction over the given pages and
// returns the sorted, deduplicated entries together with pass statistics.
// Malformed page records (non-positive page numbers) are skipped and
// counted, never fatal. If no TOC marker line is found the whole input is
// scanned best-effort.
func (e *Extractor) Extract(pages []outline.PageRecord) ([]outline.TOCEntry, Stats) {
	stats := Stats{PatternsUsed: make(map[string]int)}

	lines := e.flatten(pages, &stats)
	lines = lines[e.findTOCStart(lines):]

	var entries []outline.TOCEntry
	var potentials []candidate
	for _, ln := range lines {
		m, ok := e.matchPrimary(ln.text, &stats)
		if ok && m.page > 0 && e.isHighQuality(m.title, m.page) {
			entries = append(entries, e.newEntry(m.sectionID, m.title, m.page, m.fullPath, nil))
			stats.EntriesFound++
			continue
		}
		if c, ok := e.analyzePotential(ln); ok {
			potentials = append(potentials, c)
		}
	}

	entries = append(entries, e.enhancedPass(entries, lines, &stats)...)
	entries = append(entries, e.fallbackPass(potentials, &stats)...)

	return e.dedupe(entries, &stats), stats
}

// flatten turns pages into an ordered (page, line) list, dropping records
// with invalid page numbers.
func (e *Extractor) flatten(pages []outline.PageRecord, stats *Stats) []pageLine {
	var lines []pageLine
	for _, p := range pages {
		if p.Page < 1 {
			stats.MalformedPages++
			e.log.Warn("skipping malformed page record", "page", p.Page)
			continue
		}
		for _, raw := range strings.Split(p.Text, "\n") {
			lines = append(lines, pageLine{page: p.Page, text: strings.TrimRight(raw, " \t\r")})
		}
	}
	return lines
}

// findTOCStart returns the index of the first line after a TOC marker, or
// 0 when no marker is present. Markers are only searched within the first
// TOCSearchDepth pages; tables of contents live at the front of a document.
func (e *Extractor) findTOCStart(lines []pageLine) int {
	for idx, ln := range lines {
		if e.cfg.TOCSearchDepth > 0 && ln.page > e.cfg.TOCSearchDepth {
			break
		}
		for _, marker := range e.tocMarker {
			if marker.MatchString(ln.text) {
				return idx + 1
			}
		}
	}
	return 0
}

// matchPrimary tests a line against the primary patterns in order and
// normalizes the first hit.
func (e *Extractor) matchPrimary(line string, stats *Stats) (match, bool) {
	clean := strings.TrimSpace(line)
	if clean == "" {
		return match{}, false
	}
	for _, p := range primaryPatterns {
		groups, ok := p.groups(clean)
		if !ok {
			continue
		}
		stats.PatternsUsed[p.name]++

		sectionID := groups["section_id"]
		switch p.style {
		case idAnnex:
			sectionID = strings.TrimSpace(capitalize(groups["annex"]) + " " + sectionID)
		case idChapter:
			sectionID = "Chapter " + sectionID
		}
		return match{
			sectionID: sectionID,
			title:     cleanTitle(groups["title"]),
			page:      parsePage(groups["page"]),
			fullPath:  clean,
		}, true
	}
	return match{}, false
}

// analyzePotential scores a line that no primary pattern accepted: it must
// carry a trailing page-number token behind a non-numeric multi-word title.
func (e *Extractor) analyzePotential(ln pageLine) (candidate, bool) {
	clean := strings.TrimSpace(ln.text)
	if len(clean) < 5 || len(clean) > 200 {
		return candidate{}, false
	}
	words := strings.Fields(clean)
	if len(words) < 2 {
		return candidate{}, false
	}
	last := words[len(words)-1]
	page, err := strconv.Atoi(last)
	if err != nil || page < 1 || page > 9999 {
		return candidate{}, false
	}
	title := strings.TrimSpace(strings.Join(words[:len(words)-1], " "))
	if title == "" || isAllDigits(title) {
		return candidate{}, false
	}
	return candidate{
		line:       clean,
		title:      title,
		page:       page,
		sourcePage: ln.page,
		confidence: scoreCandidate(clean),
	}, true
}

// enhancedPass re-scans all lines with the broader pattern set, accepting
// only matches that pass the genuineness checks and do not duplicate an
// existing entry by page or title.
func (e *Extractor) enhancedPass(existing []outline.TOCEntry, lines []pageLine, stats *Stats) []outline.TOCEntry {
	existingTitles := make(map[string]bool, len(existing))
	for _, en := range existing {
		existingTitles[strings.ToLower(en.Title)] = true
	}

	var recovered []outline.TOCEntry
	for _, ln := range lines {
		clean := strings.TrimSpace(ln.text)
		if clean == "" || e.lineAlreadyClaimed(clean, existing) {
			continue
		}
		for _, p := range enhancedPatterns {
			groups, ok := p.groups(clean)
			if !ok {
				continue
			}
			page := parsePage(groups["page"])
			title := cleanTitle(groups["title"])
			lower := strings.ToLower(title)

			if page < 1 || page > e.cfg.MaxPlausiblePage ||
				len(strings.TrimSpace(title)) < e.cfg.MinTitleLen ||
				existingTitles[lower] ||
				strings.HasPrefix(lower, "page ") ||
				looksLikeTechnicalData(title) ||
				!e.looksGenuine(title) {
				continue
			}

			sectionID := groups["section_id"]
			entry := e.newEntry(sectionID, title, page, clean, []string{"enhanced_extraction"})
			if sectionID == "" {
				// Patterns without an id group still get a stable
				// page-derived identifier; hierarchy stays flat.
				entry.SectionID = fmt.Sprintf("Section-%d", page)
			}
			recovered = append(recovered, entry)
			existingTitles[lower] = true
			stats.EnhancedEntries++
			stats.EntriesFound++
			break
		}
	}
	return recovered
}

// lineAlreadyClaimed reports whether the line is contained in the source
// line of an already accepted entry.
func (e *Extractor) lineAlreadyClaimed(clean string, entries []outline.TOCEntry) bool {
	for _, en := range entries {
		if strings.Contains(en.FullPath, clean) {
			return true
		}
	}
	return false
}

// fallbackPass synthesizes unnumbered entries from high-confidence
// candidates that look like genuine outline content.
func (e *Extractor) fallbackPass(potentials []candidate, stats *Stats) []outline.TOCEntry {
	var entries []outline.TOCEntry
	for _, c := range potentials {
		if c.confidence < e.cfg.FallbackConfidence ||
			looksLikeTechnicalData(c.title) ||
			!e.looksGenuine(c.title) {
			continue
		}
		title := strings.TrimSpace(c.title)
		lower := strings.ToLower(title)
		if len(title) < 8 || len(strings.Fields(title)) < 2 {
			continue
		}
		if strings.HasPrefix(lower, "error") || strings.HasPrefix(lower, "data object") ||
			strings.HasPrefix(lower, "byte") || strings.HasPrefix(lower, "bit") {
			continue
		}
		entries = append(entries, e.newEntry("", title, c.page, c.line, nil))
		stats.FallbackEntries++
		stats.EntriesFound++
	}
	return entries
}

// newEntry assembles a TOCEntry with derived hierarchy fields and content
// tags. extraTags, when non-nil, replaces keyword-derived tagging.
func (e *Extractor) newEntry(sectionID, title string, page int, fullPath string, extraTags []string) outline.TOCEntry {
	tags := extraTags
	if tags == nil {
		tags = generateTags(title)
	}
	return outline.TOCEntry{
		DocTitle:  e.docTitle,
		SectionID: sectionID,
		Title:     title,
		Page:      page,
		Level:     outline.Level(sectionID),
		ParentID:  outline.ParentID(sectionID),
		FullPath:  fullPath,
		Tags:      tags,
	}
}

// dedupe sorts entries by (page, title), collapses duplicates sharing a
// page and lowercase title prefix, and drops entries outside the plausible
// page bounds.
func (e *Extractor) dedupe(entries []outline.TOCEntry, stats *Stats) []outline.TOCEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Page != entries[j].Page {
			return entries[i].Page < entries[j].Page
		}
		return entries[i].Title < entries[j].Title
	})

	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, en := range entries {
		key := fmt.Sprintf("%d|%s", en.Page, titlePrefix(en.Title, 50))
		if seen[key] {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = true
		if en.Page < e.cfg.MinPlausiblePage || en.Page > e.cfg.MaxPlausiblePage {
			stats.InvalidFiltered++
			continue
		}
		out = append(out, en)
	}
	return out
}

// titlePrefix returns the first n runes of the lowercased, trimmed title.
func titlePrefix(title string, n int) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(title)))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// tagRules maps content-type tags to the title keywords that trigger them.
var tagRules = []struct {
	tag      string
	keywords []string
}{
	{"introductory", []string{"introduction", "overview", "summary"}},
	{"concluding", []string{"conclusion", "summary", "results"}},
	{"supplementary", []string{"appendix", "annex", "supplement"}},
	{"reference", []string{"reference", "bibliography", "citation"}},
	{"visual_content", []string{"table", "figure", "diagram", "chart"}},
	{"specification", []string{"specification", "requirement", "standard"}},
}

// generateTags classifies an entry by scanning its title for content-type
// keywords.
func generateTags(title string) []string {
	lower := strings.ToLower(title)
	var tags []string
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return tags
}

func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
