package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/metadata"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pagesource"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/dgallion1/docoutline/internal/report"
	"github.com/dgallion1/docoutline/internal/section"
	"github.com/dgallion1/docoutline/internal/toc"
)

// outlineResponse is the wire shape of one extraction run.
type outlineResponse struct {
	DocTitle    string               `json:"doc_title"`
	ContentHash string               `json:"content_hash,omitempty"`
	Metadata    metadata.Metadata    `json:"metadata"`
	TOCEntries  []outline.TOCEntry   `json:"toc_entries"`
	Sections    []outline.Section    `json:"sections"`
	Report      report.Report        `json:"report"`
	TOCStats    toc.Stats            `json:"toc_stats"`
	Stats       section.Stats        `json:"stats"`
	Errors      []pipeline.StepError `json:"errors,omitempty"`
}

func responseFromResult(res *pipeline.Result) outlineResponse {
	entries := res.Entries
	if entries == nil {
		entries = []outline.TOCEntry{}
	}
	sections := res.Sections
	if sections == nil {
		sections = []outline.Section{}
	}
	return outlineResponse{
		DocTitle:    res.DocTitle,
		ContentHash: res.ContentHash,
		Metadata:    res.Metadata,
		TOCEntries:  entries,
		Sections:    sections,
		Report:      res.Report,
		TOCStats:    res.TOCStats,
		Stats:       res.Stats,
		Errors:      res.Errors,
	}
}

// handleOutline accepts a multipart document upload and returns the full
// extraction result.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !pagesource.IsSupported(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.pipeline.RunReader(bytes.NewReader(data), filename, r.FormValue("title"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responseFromResult(res))
}

// outlinePagesRequest carries pre-extracted pages, optionally with a
// cached or hand-edited TOC that skips entry extraction.
type outlinePagesRequest struct {
	DocTitle   string               `json:"doc_title"`
	Pages      []outline.PageRecord `json:"pages"`
	TOCEntries []outline.TOCEntry   `json:"toc_entries"`
}

// handleOutlinePages runs extraction over a JSON page stream.
func (s *Server) handleOutlinePages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req outlinePagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Pages) == 0 {
		jsonError(w, "pages is required", http.StatusBadRequest)
		return
	}

	res := s.pipeline.RunPages(req.Pages, req.TOCEntries, req.DocTitle)
	status := http.StatusOK
	for _, e := range res.Errors {
		if e.Step == pipeline.StepSections {
			status = http.StatusUnprocessableEntity
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(responseFromResult(res))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
