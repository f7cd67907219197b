// Package pagesource turns uploaded documents into the ordered page
// records the extraction core consumes. Each format maps its own natural
// unit (PDF page, top-level heading, row batch) onto sequential pages.
package pagesource

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// Source converts raw document bytes into page records. Page numbers are
// 1-based and contiguous; blank pages are kept so numbering stays aligned
// with the source document.
type Source interface {
	Pages(r io.Reader, filename string) ([]outline.PageRecord, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".csv":
		return &CSVSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupported checks if a file extension is supported.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// fromBlocks numbers a sequence of text blocks as pages 1..n.
func fromBlocks(blocks []string) []outline.PageRecord {
	pages := make([]outline.PageRecord, 0, len(blocks))
	for i, b := range blocks {
		pages = append(pages, outline.PageRecord{Page: i + 1, Text: strings.TrimRight(b, "\n")})
	}
	return pages
}
