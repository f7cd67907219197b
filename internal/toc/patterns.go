package toc

import "regexp"

// idStyle tells the extractor how to assemble a section id from a pattern's
// capture groups.
type idStyle int

const (
	idPlain   idStyle = iota // section_id group used as-is (possibly absent)
	idAnnex                  // "Annex A" / "Appendix B"
	idChapter                // "Chapter 3"
)

// pattern pairs a compiled matcher with the instructions for interpreting
// its groups. Patterns are evaluated in slice order, most specific first;
// the first match wins. All expressions are RE2, so matching is linear in
// the line length.
type pattern struct {
	name  string
	re    *regexp.Regexp
	style idStyle
}

// primaryPatterns is the high-precision pattern set used by the first
// extraction pass.
var primaryPatterns = []pattern{
	{
		// 2.1.3 Title .... 45
		name: "numbered_dotted_leader",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>\d+(?:\.\d+)*)\s+(?P<title>[^.]+?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
	},
	{
		// 2.1.3 Title     45  (wide whitespace separator)
		name: "numbered_wide_space",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>\d+(?:\.\d+)*)\s+(?P<title>.{5,80}?)\s{3,}(?P<page>\d{1,4})\s*$`),
	},
	{
		// Table 3.1 Title .... 45 / Figure 2.4 Title .... 12
		name: "table_figure",
		re: regexp.MustCompile(
			`(?i)^\s*(?:Table|Figure)\s*(?P<section_id>\d+(?:\.\d+)*)\s+(?P<title>.{5,100}?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
	},
	{
		// Appendix A Title .... 990 / Annex B Title .... 1001
		name: "annex",
		re: regexp.MustCompile(
			`(?i)^\s*(?P<annex>Appendix|Annex)\s+(?P<section_id>[A-Z])\s+(?P<title>.{5,80}?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
		style: idAnnex,
	},
	{
		// Chapter 4 Title .... 120
		name: "chapter",
		re: regexp.MustCompile(
			`(?i)^\s*Chapter\s+(?P<section_id>\d+)\s+(?P<title>.{5,80}?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
		style: idChapter,
	},
	{
		// Capitalized Title ...... 45 (no section number)
		name: "capitalized_title",
		re: regexp.MustCompile(
			`^(?P<title>[A-Z][^.]{10,80}?)\s*\.{4,}\s*(?P<page>\d{1,4})\s*$`),
	},
	{
		// A.1 Title .... 990 (lettered subsections)
		name: "lettered",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>[A-Z]\.\d+(?:\.\d+)*)\s+(?P<title>.{5,80}?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
	},
}

// enhancedPatterns is the broader recovery set applied to lines the primary
// pass did not claim. Matches are subject to additional genuineness checks.
var enhancedPatterns = []pattern{
	{
		name: "flexible_numbered",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>\d+(?:\.\d+)*)\s*(?P<title>.{3,100}?)\s+(?P<page>\d{1,4})\s*$`),
	},
	{
		name: "reference_prefix",
		re: regexp.MustCompile(
			`(?i)^\s*(?:Table|Figure|Equation)\s*(?P<section_id>\d+(?:\.\d+)*)\s*(?P<title>.{3,80}?)\s+(?P<page>\d{1,4})\s*$`),
	},
	{
		name: "bullet",
		re: regexp.MustCompile(
			`^\s*[•\-*]\s*(?P<title>.{5,80}?)\s+(?P<page>\d{1,4})\s*$`),
	},
	{
		name: "deep_subsection",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>\d+\.\d+\.\d+)\s+(?P<title>.{5,60}?)\s+(?P<page>\d{1,4})\s*$`),
	},
	{
		name: "named_section",
		re: regexp.MustCompile(
			`(?i)^\s*(?P<title>References?|Bibliography|Index|Glossary)\s+(?P<page>\d{1,4})\s*$`),
	},
	{
		name: "roman_numeral",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>[IVX]+(?:\.[IVX]+)*)\s+(?P<title>.{5,80}?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
	},
	{
		name: "lettered_hierarchy",
		re: regexp.MustCompile(
			`^\s*(?P<section_id>[A-Z](?:\.[A-Z])*(?:\.\d+)*)\s+(?P<title>.{5,80}?)\s*\.{3,}\s*(?P<page>\d{1,4})\s*$`),
	},
}

// groups extracts the named capture groups of a match into a map. Absent
// groups are reported as missing, not as empty strings.
func (p pattern) groups(line string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string, 3)
	for i, name := range p.re.SubexpNames() {
		if name == "" || i >= len(m) {
			continue
		}
		out[name] = m[i]
	}
	return out, true
}
