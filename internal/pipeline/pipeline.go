// Package pipeline runs the full document analysis: page extraction,
// metadata scan, TOC recognition, section assembly and the coverage
// report, then persists the artifacts. Steps after page extraction fail
// soft: an error is recorded and the remaining steps run on whatever the
// earlier ones produced.
package pipeline

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/jsonl"
	"github.com/dgallion1/docoutline/internal/metadata"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pagesource"
	"github.com/dgallion1/docoutline/internal/report"
	"github.com/dgallion1/docoutline/internal/section"
	"github.com/dgallion1/docoutline/internal/toc"
)

// Step names the pipeline phases for error attribution.
type Step string

const (
	StepPages    Step = "pages"
	StepMetadata Step = "metadata"
	StepTOC      Step = "toc"
	StepSections Step = "sections"
	StepReport   Step = "report"
)

// StepError attributes a recoverable failure to the step that raised it.
type StepError struct {
	Step Step   `json:"step"`
	Err  string `json:"error"`
}

// Result bundles everything one run produced.
type Result struct {
	DocTitle    string               `json:"doc_title"`
	ContentHash string               `json:"content_hash,omitempty"`
	Pages       []outline.PageRecord `json:"-"`
	Metadata    metadata.Metadata    `json:"metadata"`
	Entries     []outline.TOCEntry   `json:"-"`
	Sections    []outline.Section    `json:"-"`
	Report      report.Report        `json:"report"`
	TOCStats    toc.Stats            `json:"toc_stats"`
	Stats       section.Stats        `json:"stats"`
	Errors      []StepError          `json:"errors,omitempty"`
}

// Pipeline wires the extraction components behind one entry point.
type Pipeline struct {
	cfg config.Config
	log *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// RunFile analyzes the document at path.
func (p *Pipeline) RunFile(path, docTitle string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return p.RunReader(f, filepath.Base(path), docTitle)
}

// RunReader analyzes a document supplied as a byte stream; filename
// selects the page source by extension.
func (p *Pipeline) RunReader(r io.Reader, filename, docTitle string) (*Result, error) {
	src, err := pagesource.ForFile(filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	pages, err := src.Pages(bytes.NewReader(data), filename)
	if err != nil {
		// Nothing downstream can run without pages.
		return nil, fmt.Errorf("%s step: %w", StepPages, err)
	}

	res := p.RunPages(pages, nil, docTitle)
	res.ContentHash = ContentHashHex(data)
	return res, nil
}

// RunPages analyzes an already extracted page stream. A non-nil entries
// slice bypasses TOC extraction.
func (p *Pipeline) RunPages(pages []outline.PageRecord, entries []outline.TOCEntry, docTitle string) *Result {
	if docTitle == "" {
		docTitle = p.cfg.DocTitle
	}
	res := &Result{DocTitle: docTitle, Pages: pages}

	res.Metadata = metadata.Extract(pages, p.cfg.MetadataPages, docTitle)
	if res.Metadata.DocTitle != metadata.Unknown && res.Metadata.DocTitle != "" {
		res.DocTitle = res.Metadata.DocTitle
	}

	res.Entries = entries
	if res.Entries == nil {
		res.Entries, res.TOCStats = toc.New(p.cfg, res.DocTitle, p.log).Extract(pages)
	}

	x := section.NewExtractor(p.cfg, res.DocTitle, p.log)
	sections, stats, err := x.Extract(pages, res.Entries)
	if err != nil {
		res.Errors = append(res.Errors, StepError{Step: StepSections, Err: err.Error()})
		p.log.Error("section extraction failed", "error", err)
	}
	res.Sections = sections
	res.Stats = stats

	res.Report = report.Build(pages, res.Entries, res.Sections, res.Metadata)
	return res
}

// WriteArtifacts persists the run's outputs to dir using the configured
// filenames. Each artifact is written independently; the first failure is
// returned after attempting the rest.
func (p *Pipeline) WriteArtifacts(res *Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var firstErr error
	write := func(name string, fn func(path string) error) {
		path := filepath.Join(dir, name)
		if err := fn(path); err != nil {
			p.log.Error("write artifact failed", "path", path, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	write(p.cfg.PagesFile, func(path string) error {
		return jsonl.WriteFile(path, res.Pages)
	})
	write(p.cfg.MetadataFile, func(path string) error {
		return jsonl.WriteFile(path, []metadata.Metadata{res.Metadata})
	})
	write(p.cfg.TOCFile, func(path string) error {
		return jsonl.WriteFile(path, res.Entries)
	})
	write(p.cfg.SectionsFile, func(path string) error {
		return jsonl.WriteFile(path, res.Sections)
	})
	write(p.cfg.ReportFile, func(path string) error {
		return res.Report.WriteFile(path)
	})
	return firstErr
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
