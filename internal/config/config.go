// Package config centralizes every tunable of the extraction engine and its
// service surface. Heuristic thresholds that were historically scattered
// across components (page bounds, title lengths, confidence cutoffs) live
// here so there is exactly one authoritative value for each.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	APIKey string

	// Document defaults
	DocTitle string

	// Plausible page bounds for TOC entries. MaxPlausiblePage is applied
	// both in the primary quality gate and the final cleanup sweep.
	MinPlausiblePage int
	MaxPlausiblePage int

	// Title quality gate
	MinTitleLen int
	MaxTitleLen int

	// Fallback recovery
	FallbackConfidence float64

	// TOC location
	TOCKeywords    []string
	TOCSearchDepth int // pages scanned for TOC content in the pipeline

	// Genuine-entry heuristic keyword list (replaceable per document family)
	GenuineKeywords []string

	// Standalone section heading scan
	HeadingScanDepth int // leading lines inspected per page

	// Upload limits
	MaxUploadBytes int64

	// Validation
	ValidationEnabled bool

	// Metadata scan
	MetadataPages int

	// Default artifact filenames
	PagesFile    string
	MetadataFile string
	TOCFile      string
	SectionsFile string
	ReportFile   string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Environment variables already
// set take precedence over .env values.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:   envOr("PORT", "8091"),
		APIKey: os.Getenv("DOCOUTLINE_API_KEY"),

		DocTitle: envOr("DOC_TITLE", "Untitled Document"),

		MinPlausiblePage: envInt("MIN_PLAUSIBLE_PAGE", 1),
		MaxPlausiblePage: envInt("MAX_PLAUSIBLE_PAGE", 9999),

		MinTitleLen: envInt("MIN_TITLE_LEN", 5),
		MaxTitleLen: envInt("MAX_TITLE_LEN", 120),

		FallbackConfidence: envFloat("FALLBACK_CONFIDENCE", 0.6),

		TOCKeywords:    envList("TOC_KEYWORDS", []string{"table of contents", "contents"}),
		TOCSearchDepth: envInt("TOC_SEARCH_DEPTH", 60),

		GenuineKeywords: envList("GENUINE_KEYWORDS", defaultGenuineKeywords()),

		HeadingScanDepth: envInt("HEADING_SCAN_DEPTH", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB

		ValidationEnabled: envBool("VALIDATION_ENABLED", true),

		MetadataPages: envInt("METADATA_PAGES", 5),

		PagesFile:    envOr("PAGES_FILE", "pages.jsonl"),
		MetadataFile: envOr("METADATA_FILE", "metadata.jsonl"),
		TOCFile:      envOr("TOC_FILE", "toc.jsonl"),
		SectionsFile: envOr("SECTIONS_FILE", "sections.jsonl"),
		ReportFile:   envOr("REPORT_FILE", "report.json"),
	}

	if cfg.MinPlausiblePage < 1 {
		cfg.MinPlausiblePage = 1
	}
	if cfg.MaxPlausiblePage < cfg.MinPlausiblePage {
		cfg.MaxPlausiblePage = 9999
	}
	if cfg.MinTitleLen <= 0 {
		cfg.MinTitleLen = 5
	}
	if cfg.MaxTitleLen < cfg.MinTitleLen {
		cfg.MaxTitleLen = 120
	}
	if cfg.FallbackConfidence <= 0 || cfg.FallbackConfidence > 1 {
		cfg.FallbackConfidence = 0.6
	}
	if cfg.HeadingScanDepth <= 0 {
		cfg.HeadingScanDepth = 5
	}
	if cfg.TOCSearchDepth <= 0 {
		cfg.TOCSearchDepth = 60
	}
	if cfg.MetadataPages <= 0 {
		cfg.MetadataPages = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}

	return cfg
}

func (c Config) Validate() error {
	if len(c.TOCKeywords) == 0 {
		return fmt.Errorf("TOC_KEYWORDS must not be empty")
	}
	if len(c.GenuineKeywords) == 0 {
		return fmt.Errorf("GENUINE_KEYWORDS must not be empty")
	}
	return nil
}

// defaultGenuineKeywords lists words that mark a title as likely TOC
// content. Tuned for technical specification documents; override with the
// GENUINE_KEYWORDS environment variable for other document families.
func defaultGenuineKeywords() []string {
	return []string{
		"introduction", "overview", "specification", "requirements",
		"protocol", "interface", "power", "delivery", "usb",
		"connector", "cable", "message", "communication",
		"appendix", "annex", "reference", "glossary", "index",
		"chapter", "section", "figure", "table", "example",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
