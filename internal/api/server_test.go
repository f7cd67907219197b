package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

func testServer() *Server {
	cfg := config.Config{
		APIKey:             "test-key",
		DocTitle:           "Untitled Document",
		MinPlausiblePage:   1,
		MaxPlausiblePage:   9999,
		MinTitleLen:        5,
		MaxTitleLen:        120,
		FallbackConfidence: 0.6,
		TOCKeywords:        []string{"table of contents", "contents"},
		GenuineKeywords:    []string{"introduction", "overview"},
		HeadingScanDepth:   5,
		MetadataPages:      5,
		MaxUploadBytes:     1 << 20,
		ValidationEnabled:  true,
	}
	log := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewServer(pipeline.New(cfg, log), log, cfg)
}

func TestHealth_NoAuthRequired(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestOutline_RequiresAuth(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/outline/pages", strings.NewReader("{}")))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/outline/pages", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestOutlinePages_Extraction(t *testing.T) {
	s := testServer()

	body := `{
		"doc_title": "Test Spec",
		"pages": [
			{"page": 1, "text": "Table of Contents"},
			{"page": 2, "text": "1 Introduction .... 3"},
			{"page": 3, "text": "introduction body"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/outline/pages", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-key")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp outlineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.TOCEntries) != 1 || resp.TOCEntries[0].Title != "Introduction" {
		t.Errorf("unexpected TOC entries: %+v", resp.TOCEntries)
	}
	if len(resp.Sections) == 0 {
		t.Error("expected sections in response")
	}
	if resp.Report.TotalPages != 3 {
		t.Errorf("unexpected report: %+v", resp.Report)
	}
}

func TestOutlinePages_PrecomputedTOC(t *testing.T) {
	s := testServer()

	body := `{
		"pages": [
			{"page": 1, "text": "alpha content"},
			{"page": 2, "text": "beta content"}
		],
		"toc_entries": [
			{"section_id": "1", "title": "Alpha", "page": 1, "level": 1}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/outline/pages", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-key")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp outlineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.TOCEntries) != 1 || resp.TOCEntries[0].SectionID != "1" {
		t.Errorf("expected supplied TOC kept, got %+v", resp.TOCEntries)
	}
	if resp.TOCStats.EntriesFound != 0 {
		t.Errorf("expected extraction bypassed, got stats %+v", resp.TOCStats)
	}
}

func TestOutlinePages_EmptyPagesRejected(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/outline/pages", strings.NewReader(`{"pages": []}`))
	req.Header.Set("Authorization", "Bearer test-key")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty pages, got %d", rec.Code)
	}
}

func TestOutline_MultipartUpload(t *testing.T) {
	s := testServer()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "spec.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("Table of Contents\n1 Introduction .... 2\fintroduction body"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/outline", &buf)
	req.Header.Set("Authorization", "Bearer test-key")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp outlineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ContentHash == "" {
		t.Error("expected content hash for uploaded document")
	}
	if resp.Report.TotalPages != 2 {
		t.Errorf("unexpected report: %+v", resp.Report)
	}
}

func TestOutline_UnsupportedFileType(t *testing.T) {
	s := testServer()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "spec.exe")
	fw.Write([]byte("binary"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/outline", &buf)
	req.Header.Set("Authorization", "Bearer test-key")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported type, got %d", rec.Code)
	}
}
