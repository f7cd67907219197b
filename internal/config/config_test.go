package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DOC_TITLE", "MIN_PLAUSIBLE_PAGE", "MAX_PLAUSIBLE_PAGE",
		"MIN_TITLE_LEN", "MAX_TITLE_LEN", "FALLBACK_CONFIDENCE",
		"TOC_KEYWORDS", "GENUINE_KEYWORDS", "HEADING_SCAN_DEPTH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("unexpected default port: %q", cfg.Port)
	}
	if cfg.MinPlausiblePage != 1 || cfg.MaxPlausiblePage != 9999 {
		t.Errorf("unexpected page bounds: %d..%d", cfg.MinPlausiblePage, cfg.MaxPlausiblePage)
	}
	if cfg.MinTitleLen != 5 || cfg.MaxTitleLen != 120 {
		t.Errorf("unexpected title bounds: %d..%d", cfg.MinTitleLen, cfg.MaxTitleLen)
	}
	if cfg.FallbackConfidence != 0.6 {
		t.Errorf("unexpected fallback confidence: %v", cfg.FallbackConfidence)
	}
	if len(cfg.TOCKeywords) == 0 || len(cfg.GenuineKeywords) == 0 {
		t.Error("expected non-empty keyword defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MAX_PLAUSIBLE_PAGE", "1047")
	t.Setenv("TOC_KEYWORDS", "inhalt, contents ,")
	t.Setenv("FALLBACK_CONFIDENCE", "0.75")

	cfg := Load()
	if cfg.MaxPlausiblePage != 1047 {
		t.Errorf("expected override 1047, got %d", cfg.MaxPlausiblePage)
	}
	if len(cfg.TOCKeywords) != 2 || cfg.TOCKeywords[0] != "inhalt" || cfg.TOCKeywords[1] != "contents" {
		t.Errorf("unexpected keyword parsing: %v", cfg.TOCKeywords)
	}
	if cfg.FallbackConfidence != 0.75 {
		t.Errorf("expected override 0.75, got %v", cfg.FallbackConfidence)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MIN_PLAUSIBLE_PAGE", "-3")
	t.Setenv("MAX_PLAUSIBLE_PAGE", "not-a-number")
	t.Setenv("FALLBACK_CONFIDENCE", "7.5")

	cfg := Load()
	if cfg.MinPlausiblePage != 1 {
		t.Errorf("expected min page clamped to 1, got %d", cfg.MinPlausiblePage)
	}
	if cfg.MaxPlausiblePage != 9999 {
		t.Errorf("expected max page default, got %d", cfg.MaxPlausiblePage)
	}
	if cfg.FallbackConfidence != 0.6 {
		t.Errorf("expected confidence default, got %v", cfg.FallbackConfidence)
	}
}
