package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outline",
	Short: "Document outline extraction from page-level text",
	Long: `Outline recovers the structure of large technical documents: it reads a
document (PDF, text, Markdown, DOCX, HTML or CSV), recognizes table of
contents entries, maps their page coverage, and emits a complete section
list in which every page is accounted for.

Artifacts written per run:
  - pages.jsonl     extracted page records
  - metadata.jsonl  document title, revision, version, release date
  - toc.jsonl       validated TOC entries
  - sections.jsonl  TOC-derived and standalone sections
  - report.json     coverage summary`,
}

func init() {
	rootCmd.AddCommand(runCmd)
}
