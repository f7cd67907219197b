package pagesource

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// linesPerPage is the synthetic page height for plain text files without
// form feeds.
const linesPerPage = 60

// TextSource handles plain text files. Form feed characters delimit
// pages when present; otherwise the text is windowed into fixed-height
// synthetic pages.
type TextSource struct{}

func (s *TextSource) Pages(r io.Reader, filename string) ([]outline.PageRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	full := strings.Join(lines, "\n")
	if strings.Contains(full, "\f") {
		return fromBlocks(strings.Split(full, "\f")), nil
	}

	var blocks []string
	for i := 0; i < len(lines); i += linesPerPage {
		end := i + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		blocks = append(blocks, strings.Join(lines[i:end], "\n"))
	}
	return fromBlocks(blocks), nil
}
