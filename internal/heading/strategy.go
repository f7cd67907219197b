// Package heading classifies single text lines as section headings using a
// set of pluggable strategies, each reporting a confidence score.
package heading

import (
	"regexp"
	"strings"
	"unicode"
)

// Strategy judges whether one trimmed text line looks like a heading.
// Confidence returns 0 for non-matches and a score in (0, 1] otherwise.
// Strategies are pure: they hold only configuration, never per-call state,
// so a single instance is safe to share across concurrent extractions.
type Strategy interface {
	Name() string
	Confidence(line string) float64
}

var numberedPrefix = regexp.MustCompile(`^\d+(\.\d+)*\s+\S`)

// Numbered matches lines that start with a dotted numeric prefix followed
// by content, e.g. "1.2.3 Protocol Overview". Deeper numbering yields
// higher confidence.
type Numbered struct{}

func (Numbered) Name() string { return "numbered" }

func (Numbered) Confidence(line string) float64 {
	line = strings.TrimSpace(line)
	if line == "" || !numberedPrefix.MatchString(line) {
		return 0
	}
	dots := strings.Count(line, ".")
	conf := 0.6 + 0.2*float64(dots)
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

var allCapsShape = regexp.MustCompile(`^[A-Z0-9\s\-()/]{4,}$`)

// AllCaps matches lines of uppercase letters, digits, spaces and light
// punctuation, at least MinLength characters long with at least
// MinAlphaChars uppercase letters. Confidence is the ratio of uppercase to
// alphabetic characters.
type AllCaps struct {
	MinLength     int
	MinAlphaChars int
}

// NewAllCaps returns an AllCaps strategy with the default thresholds.
func NewAllCaps() AllCaps {
	return AllCaps{MinLength: 4, MinAlphaChars: 2}
}

func (AllCaps) Name() string { return "all_caps" }

func (s AllCaps) Confidence(line string) float64 {
	line = strings.TrimSpace(line)
	if len(line) < s.MinLength || !allCapsShape.MatchString(line) {
		return 0
	}
	var alpha, upper int
	for _, r := range line {
		if unicode.IsLetter(r) {
			alpha++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if upper < s.MinAlphaChars || alpha == 0 {
		return 0
	}
	conf := float64(upper) / float64(alpha)
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

// MixedCaps matches multi-word lines where at least half the words start
// with an uppercase letter or digit, the typical shape of a title-cased
// heading. Confidence is the fraction of such words.
type MixedCaps struct {
	MinWords int
}

// NewMixedCaps returns a MixedCaps strategy with the default word minimum.
func NewMixedCaps() MixedCaps {
	return MixedCaps{MinWords: 2}
}

func (MixedCaps) Name() string { return "mixed_caps" }

func (s MixedCaps) Confidence(line string) float64 {
	words := strings.Fields(line)
	if len(words) < s.MinWords {
		return 0
	}
	capitalized := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	threshold := len(words) / 2
	if threshold < 1 {
		threshold = 1
	}
	if capitalized < threshold {
		return 0
	}
	return float64(capitalized) / float64(len(words))
}
