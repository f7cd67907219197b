package pagesource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// csvRowsPerPage is how many data rows make one synthetic page.
const csvRowsPerPage = 20

// CSVSource handles CSV files: rows are rendered as labeled lines and
// batched into synthetic pages, each led by a row-range heading.
type CSVSource struct{}

func (s *CSVSource) Pages(r io.Reader, filename string) ([]outline.PageRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var blocks []string
	for i := 0; i < len(dataRows); i += csvRowsPerPage {
		end := i + csvRowsPerPage
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		// 1-indexed row range, skipping the header row.
		fmt.Fprintf(&text, "Rows %d-%d\n", i+2, end+1)
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}
		blocks = append(blocks, text.String())
	}

	return fromBlocks(blocks), nil
}
