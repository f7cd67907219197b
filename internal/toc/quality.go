package toc

import (
	"regexp"
	"strings"
	"unicode"
)

// technicalDataPatterns match titles that are really fragments of data
// tables, bit fields or signal listings rather than outline entries. They
// are checked against the lowercased title.
var technicalDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\s+\d+\s+\d+`),      // runs of bare numbers
	regexp.MustCompile(`^[01\s]+$`),             // binary-looking strings
	regexp.MustCompile(`hex\s+data`),            // hex dumps
	regexp.MustCompile(`bit\s*=\s*\d`),          // bit assignments
	regexp.MustCompile(`k-code`),                // K-code references
	regexp.MustCompile(`byte\s+\d`),             // byte offsets
	regexp.MustCompile(`^[a-z]\d+rx`),           // signal names like y3rx
	regexp.MustCompile(`preamble.*training`),    // line training sequences
	regexp.MustCompile(`data\s+object\s+\d`),    // data object references
}

// looksLikeTechnicalData reports whether a candidate title is a technical
// data fragment. Very short titles containing digits are rejected outright.
func looksLikeTechnicalData(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, re := range technicalDataPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	if len(lower) < 10 && strings.ContainsFunc(lower, unicode.IsDigit) {
		return true
	}
	return false
}

// isHighQuality is the acceptance gate for primary-pass matches: title
// length within bounds, page within the plausible range, and no signs of a
// parsing artifact.
func (e *Extractor) isHighQuality(title string, page int) bool {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < e.cfg.MinTitleLen || len(title) > e.cfg.MaxTitleLen {
		return false
	}
	if page < e.cfg.MinPlausiblePage || page > e.cfg.MaxPlausiblePage {
		return false
	}
	if strings.Count(title, ".") > 15 {
		return false
	}
	digits := 0
	for _, r := range title {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if float64(digits) > float64(len(title))*0.4 {
		return false
	}
	return !looksLikeTechnicalData(title)
}

// looksGenuine applies the shape heuristic for recovered entries: either
// the title carries a configured outline keyword, or it reads like a proper
// multi-word heading (leading capital, not shouting, two substantial words).
func (e *Extractor) looksGenuine(title string) bool {
	clean := strings.TrimSpace(title)
	if len(clean) < 5 || len(clean) > 100 {
		return false
	}
	words := strings.Fields(clean)
	if len(words) < 2 {
		return false
	}

	lower := strings.ToLower(clean)
	for _, kw := range e.cfg.GenuineKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	first := []rune(clean)[0]
	if !unicode.IsUpper(first) || clean == strings.ToUpper(clean) {
		return false
	}
	substantial := 0
	for _, w := range words {
		if len(w) > 2 {
			substantial++
		}
	}
	return substantial >= 2
}

var (
	dotRuns    = regexp.MustCompile(`\.{4,}`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// cleanTitle normalizes a captured title: leader dots removed, overlong
// concatenations cut at a clause boundary, trailing punctuation stripped,
// whitespace collapsed.
func cleanTitle(title string) string {
	cleaned := strings.TrimSpace(title)
	if cleaned == "" {
		return ""
	}
	cleaned = dotRuns.ReplaceAllString(cleaned, "")

	if len(cleaned) > 120 {
		sentences := strings.Split(cleaned, ".")
		if len(sentences) > 1 && len(sentences[0]) < 80 {
			cleaned = strings.TrimSpace(sentences[0])
		} else {
			cleaned = strings.TrimSpace(cleaned[:80])
		}
	}

	cleaned = strings.TrimRight(cleaned, ". ")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.ReplaceAll(cleaned, " .", ".")
	return cleaned
}

// confidenceKeywords feed the potential-entry score; unlike the genuineness
// list these are fixed, since the score only ranks candidates for the
// threshold in Config.FallbackConfidence.
var confidenceKeywords = []string{
	"introduction", "overview", "summary", "conclusion",
	"references", "appendix", "index", "glossary", "abstract",
}

// scoreCandidate rates a non-matching line's resemblance to a TOC entry in
// [0, 1]: keyword presence, leader formatting, word count and
// capitalization each contribute a fixed share.
func scoreCandidate(line string) float64 {
	score := 0.0
	lower := strings.ToLower(line)
	for _, kw := range confidenceKeywords {
		if strings.Contains(lower, kw) {
			score += 0.3
			break
		}
	}
	if strings.Contains(line, "..") || strings.Contains(line, "  ") {
		score += 0.2
	}
	words := strings.Fields(line)
	if len(words) >= 2 && len(words) <= 15 {
		score += 0.2
	}
	for _, w := range words {
		if unicode.IsUpper([]rune(w)[0]) {
			score += 0.1
			break
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
