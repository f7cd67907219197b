// Package jsonl reads and writes line-delimited JSON, the persistence
// format for extraction artifacts (pages, TOC entries, sections).
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Write encodes one JSON object per line.
func Write[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for i, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes items to path, replacing any existing file.
func WriteFile[T any](path string, items []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes one JSON object per line. Blank and malformed lines are
// skipped and counted, not fatal, so a partially corrupt artifact still
// yields its readable records.
func Read[T any](r io.Reader) ([]T, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var items []T
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var item T
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return items, skipped, fmt.Errorf("read jsonl: %w", err)
	}
	return items, skipped, nil
}

// ReadFile reads items from path.
func ReadFile[T any](path string) ([]T, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read[T](f)
}
