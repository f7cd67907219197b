package heading

import "strings"

// Match describes a successful heading detection.
type Match struct {
	Heading    string // the trimmed input line
	Strategy   string // name of the winning strategy
	Confidence float64
}

// Detector runs a fixed, ordered set of strategies over a line and keeps
// the one with the strictly highest positive confidence. Ties go to the
// earlier-registered strategy.
type Detector struct {
	strategies []Strategy
}

// NewDetector returns a detector with the default strategy set: numbered,
// all-caps, then mixed-capitalization.
func NewDetector() *Detector {
	return &Detector{strategies: []Strategy{
		Numbered{},
		NewAllCaps(),
		NewMixedCaps(),
	}}
}

// NewDetectorWith returns a detector using the given strategies in order.
func NewDetectorWith(strategies ...Strategy) *Detector {
	return &Detector{strategies: strategies}
}

// Detect evaluates every strategy against the line and returns the best
// match. ok is false when no strategy reports positive confidence.
func (d *Detector) Detect(line string) (Match, bool) {
	clean := strings.TrimSpace(line)
	if clean == "" {
		return Match{}, false
	}

	best := Match{}
	for _, s := range d.strategies {
		conf := s.Confidence(clean)
		if conf > best.Confidence {
			best = Match{Heading: clean, Strategy: s.Name(), Confidence: conf}
		}
	}
	if best.Confidence <= 0 {
		return Match{}, false
	}
	return best, true
}
