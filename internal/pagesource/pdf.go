package pagesource

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource extracts per-page text from PDF files. It tries the Go
// library first, then falls back to pdftotext if enabled.
type PDFSource struct {
	FallbackPdftotext bool
}

func (s *PDFSource) Pages(r io.Reader, filename string) ([]outline.PageRecord, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFPages(tmpPath)
	if err != nil && s.FallbackPdftotext {
		var text string
		if text, err = extractPdftotext(tmpPath); err == nil {
			// pdftotext separates pages with form feeds.
			pages = fromBlocks(strings.Split(text, "\f"))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return pages, nil
}

func extractPDFPages(path string) ([]outline.PageRecord, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]outline.PageRecord, 0, numPages)
	for i := 1; i <= numPages; i++ {
		rec := outline.PageRecord{Page: i}
		page := reader.Page(i)
		if !page.V.IsNull() {
			// Unreadable pages stay in the list as blanks so page
			// numbers keep matching the document.
			if text, err := page.GetPlainText(nil); err == nil {
				rec.Text = text
			}
		}
		pages = append(pages, rec)
	}
	return pages, nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
