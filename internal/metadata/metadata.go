// Package metadata pulls document-level fields (title, revision, version,
// release date) from the front matter of a page stream.
package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// Unknown is the placeholder for fields no pattern matched.
const Unknown = "Unknown"

// Metadata is the document-level record persisted alongside the outline.
type Metadata struct {
	DocTitle    string `json:"doc_title"`
	Revision    string `json:"revision"`
	Version     string `json:"version"`
	ReleaseDate string `json:"release_date"`
}

var (
	// Title lines end in a document-type word; this covers the usual
	// cover-page phrasing of technical specs.
	titlePattern = regexp.MustCompile(
		`(?m)^\s*([A-Z][^\n]{5,110}(?:Specification|Standard|Reference Manual|Datasheet))\s*$`)
	revisionPattern = regexp.MustCompile(`(?i)(?:Revision|Rev\.?)[: ]\s*([0-9.]+)`)
	versionPattern  = regexp.MustCompile(`(?i)(?:Version|V)\s*:?\s*([0-9.]+)`)
	releasePattern  = regexp.MustCompile(`(?i)(?:Release Date|Published:?)\s*:?\s*([0-9]{4}(?:-[0-9]{1,2})?)`)
)

// Extract scans the first scanPages pages for metadata fields. Fields
// with no match are set to Unknown, except the title which falls back to
// the given default when non-empty.
func Extract(pages []outline.PageRecord, scanPages int, fallbackTitle string) Metadata {
	var parts []string
	for _, p := range pages {
		if p.Page > scanPages {
			continue
		}
		parts = append(parts, p.Text)
	}
	text := strings.Join(parts, "\n")

	m := Metadata{
		DocTitle:    firstGroup(titlePattern, text),
		Revision:    firstGroup(revisionPattern, text),
		Version:     firstGroup(versionPattern, text),
		ReleaseDate: firstGroup(releasePattern, text),
	}
	if m.DocTitle == Unknown && fallbackTitle != "" {
		m.DocTitle = fallbackTitle
	}
	return m
}

// Validate reports which required fields are missing or unresolved.
func Validate(m Metadata) []string {
	var errs []string
	for _, f := range []struct{ name, value string }{
		{"doc_title", m.DocTitle},
		{"revision", m.Revision},
		{"version", m.Version},
		{"release_date", m.ReleaseDate},
	} {
		if f.value == "" || f.value == Unknown {
			errs = append(errs, fmt.Sprintf("missing required field: %s", f.name))
		}
	}
	return errs
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return Unknown
}
