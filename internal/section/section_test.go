package section

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
)

func testConfig() config.Config {
	return config.Config{
		DocTitle:          "Test Spec",
		MinPlausiblePage:  1,
		MaxPlausiblePage:  9999,
		MinTitleLen:       5,
		MaxTitleLen:       120,
		TOCKeywords:       []string{"table of contents", "contents"},
		GenuineKeywords:   []string{"introduction", "overview"},
		HeadingScanDepth:  5,
		ValidationEnabled: true,
	}
}

func entry(id, title string, page int) outline.TOCEntry {
	return outline.TOCEntry{
		SectionID: id,
		Title:     title,
		Page:      page,
		Level:     outline.Level(id),
		ParentID:  outline.ParentID(id),
		FullPath:  fmt.Sprintf("%s %s .... %d", id, title, page),
	}
}

func TestPageIndex_ContentRange(t *testing.T) {
	idx := NewPageIndex([]outline.PageRecord{
		{Page: 1, Text: "one"},
		{Page: 2, Text: "two"},
		{Page: 3, Text: "three"},
	})

	if idx.TotalPages() != 3 {
		t.Fatalf("expected 3 pages, got %d", idx.TotalPages())
	}
	if got := idx.ContentRange(1, 2); got != "one\ntwo" {
		t.Errorf("unexpected range content: %q", got)
	}
	// Out-of-bounds ends clamp instead of failing.
	if got := idx.ContentRange(-5, 99); got != "one\ntwo\nthree" {
		t.Errorf("expected clamped full-document range, got %q", got)
	}
	if got := idx.Text(7); got != "" {
		t.Errorf("expected empty text for missing page, got %q", got)
	}
	if got := idx.ContentRange(3, 2); got != "" {
		t.Errorf("expected empty content for inverted range, got %q", got)
	}
}

func TestCovered_RangesAgainstNextEntry(t *testing.T) {
	entries := []outline.TOCEntry{
		entry("1", "Introduction", 3),
		entry("2", "Details", 5),
	}

	if s, e := EntryRange(entries, 0, 5); s != 3 || e != 4 {
		t.Errorf("expected first range [3,4], got [%d,%d]", s, e)
	}
	if s, e := EntryRange(entries, 1, 5); s != 5 || e != 5 {
		t.Errorf("expected last range [5,5], got [%d,%d]", s, e)
	}

	covered := Covered(entries, 5)
	for _, p := range []int{3, 4, 5} {
		if !covered[p] {
			t.Errorf("expected page %d covered", p)
		}
	}
	for _, p := range []int{1, 2} {
		if covered[p] {
			t.Errorf("expected page %d uncovered", p)
		}
	}
}

func TestEntryRange_EndNeverBelowStart(t *testing.T) {
	entries := []outline.TOCEntry{
		entry("1", "First on page", 4),
		entry("2", "Second on same page", 4),
	}
	if s, e := EntryRange(entries, 0, 10); e < s {
		t.Errorf("range end %d below start %d", e, s)
	}
}

func TestAssembler_FromTOCEntry(t *testing.T) {
	a := NewAssembler("Doc")
	sec, err := a.FromTOCEntry(entry("3.2", "Wire Format", 7), "body")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.Kind != outline.KindTOC || sec.SectionID != "3.2" || sec.Level != 2 ||
		sec.ParentID != "3" || sec.Content != "body" || sec.DocTitle != "Doc" {
		t.Errorf("unexpected section: %+v", sec)
	}

	if _, err := a.FromTOCEntry(entry("1", "", 7), "body"); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := a.FromTOCEntry(entry("1", "Title here", 0), "body"); err == nil {
		t.Error("expected error for invalid page")
	}
}

func TestAssembler_PageSection(t *testing.T) {
	a := NewAssembler("Doc")
	sec := a.PageSection(9, "page body", "Detected Heading")
	if sec.Kind != outline.KindPage || sec.SectionID != "Page-9" || sec.Level != 1 ||
		sec.ParentID != "" || sec.Title != "Detected Heading" {
		t.Errorf("unexpected standalone section: %+v", sec)
	}
	if sec.FullPath != "Page-9 Detected Heading" {
		t.Errorf("unexpected full path: %q", sec.FullPath)
	}

	if sec := a.PageSection(4, "body", ""); sec.Title != "Page 4" {
		t.Errorf("expected page-number title fallback, got %q", sec.Title)
	}
}

func TestExtract_PartitionsAllPages(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 1, Text: "front matter"},
		{Page: 2, Text: "more front matter"},
		{Page: 3, Text: "introduction body"},
		{Page: 4, Text: "introduction continued"},
		{Page: 5, Text: "details body"},
	}
	entries := []outline.TOCEntry{
		entry("1", "Introduction", 3),
		entry("2", "Details", 5),
	}

	x := NewExtractor(testConfig(), "", nil)
	sections, stats, err := x.Extract(pages, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x.Status() != StatusDone {
		t.Errorf("expected done status, got %q", x.Status())
	}
	if stats.TOCSections != 2 || stats.StandaloneSections != 2 {
		t.Fatalf("expected 2 TOC + 2 standalone sections, got %+v", stats)
	}

	// Every page belongs to exactly one section-producing mechanism.
	claimed := make(map[int]int)
	for _, sec := range sections {
		switch sec.Kind {
		case outline.KindTOC:
			i := indexOfEntry(entries, sec.SectionID)
			start, end := EntryRange(entries, i, len(pages))
			for p := start; p <= end; p++ {
				claimed[p]++
			}
		case outline.KindPage:
			claimed[sec.Page]++
		}
	}
	for p := 1; p <= len(pages); p++ {
		if claimed[p] != 1 {
			t.Errorf("page %d claimed %d times", p, claimed[p])
		}
	}

	// TOC-derived content is the page-range slice.
	for _, sec := range sections {
		if sec.Kind == outline.KindTOC && sec.SectionID == "1" {
			if sec.Content != "introduction body\nintroduction continued" {
				t.Errorf("unexpected section content: %q", sec.Content)
			}
		}
	}
}

func indexOfEntry(entries []outline.TOCEntry, id string) int {
	for i := range entries {
		if entries[i].SectionID == id {
			return i
		}
	}
	return -1
}

func TestExtract_EmptyPagesOmitted(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 1, Text: "content"},
		{Page: 2, Text: "   \n  "},
		{Page: 3, Text: "more content"},
	}
	x := NewExtractor(testConfig(), "", nil)
	sections, stats, err := x.Extract(pages, []outline.TOCEntry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if stats.SkippedPages != 1 {
		t.Errorf("expected 1 skipped blank page, got %d", stats.SkippedPages)
	}
	for _, sec := range sections {
		if sec.Page == 2 {
			t.Errorf("blank page produced a section: %+v", sec)
		}
	}
}

func TestExtract_StandaloneHeadingDetection(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 1, Text: "REQUIREMENTS\nsome body text follows here"},
	}
	x := NewExtractor(testConfig(), "", nil)
	sections, _, err := x.Extract(pages, []outline.TOCEntry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "REQUIREMENTS" {
		t.Errorf("expected detected heading as title, got %q", sections[0].Title)
	}
}

func TestExtract_StandalonePositionalFallback(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 4) // >80 chars, no heading shape
	pages := []outline.PageRecord{
		{Page: 1, Text: long},
	}
	x := NewExtractor(testConfig(), "", nil)
	sections, _, err := x.Extract(pages, []outline.TOCEntry{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Content from Page 1" {
		t.Errorf("expected synthesized label, got %q", sections[0].Title)
	}
}

func TestExtract_SkipsEntriesOutsideDocument(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 1, Text: "alpha"},
		{Page: 2, Text: "beta"},
	}
	entries := []outline.TOCEntry{
		entry("1", "Phantom Chapter", 99),
	}
	x := NewExtractor(testConfig(), "", nil)
	sections, stats, err := x.Extract(pages, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.SkippedEntries != 1 {
		t.Errorf("expected 1 skipped entry, got %d", stats.SkippedEntries)
	}
	// With the entry dropped, every page falls back to standalone.
	if stats.StandaloneSections != 2 || len(sections) != 2 {
		t.Errorf("expected full standalone fallback, got %d sections, stats %+v", len(sections), stats)
	}
}

func TestExtract_InvalidInputFailsValidation(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 0, Text: "broken"},
	}
	x := NewExtractor(testConfig(), "", nil)
	_, _, err := x.Extract(pages, nil)

	var verr *InputValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected InputValidationError, got %v", err)
	}
	if x.Status() != StatusFailed {
		t.Errorf("expected failed status, got %q", x.Status())
	}
}

func TestExtract_ValidationDisabledTolerated(t *testing.T) {
	cfg := testConfig()
	cfg.ValidationEnabled = false
	pages := []outline.PageRecord{
		{Page: 0, Text: "broken"},
		{Page: 1, Text: "content here"},
	}
	x := NewExtractor(cfg, "", nil)
	if _, _, err := x.Extract(pages, []outline.TOCEntry{}); err != nil {
		t.Fatalf("expected best-effort run with validation off, got %v", err)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	x := NewExtractor(testConfig(), "", nil)
	sections, _, err := x.Extract(nil, nil)
	if err != nil {
		t.Fatalf("empty document must not fail: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("expected no sections, got %d", len(sections))
	}
}

func TestExtract_Deterministic(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 1, Text: "Table of Contents"},
		{Page: 2, Text: "1 Introduction .... 3"},
		{Page: 3, Text: "introduction body"},
	}
	x := NewExtractor(testConfig(), "", nil)
	first, _, err := x.Extract(pages, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := x.Extract(pages, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("section counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !reflect.DeepEqual(first[i], second[i]) {
			t.Errorf("section %d differs across runs:\n%+v\n%+v", i, first[i], second[i])
		}
	}
}

func TestExtract_SortedByPageThenID(t *testing.T) {
	pages := []outline.PageRecord{
		{Page: 1, Text: "alpha"},
		{Page: 2, Text: "beta"},
		{Page: 3, Text: "gamma"},
	}
	entries := []outline.TOCEntry{
		entry("2", "Second", 3),
		entry("1", "First", 2),
	}
	x := NewExtractor(testConfig(), "", nil)
	sections, _, err := x.Extract(pages, entries)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(sections); i++ {
		prev, cur := sections[i-1], sections[i]
		if prev.Page > cur.Page ||
			(prev.Page == cur.Page && prev.SectionID > cur.SectionID) {
			t.Errorf("sections out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
}
