package pagesource

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSource handles Markdown files using goldmark. Each top-level
// heading opens a new page, with the heading line kept as the page's
// first line so downstream heading detection sees it. Content before the
// first heading becomes page 1.
type MarkdownSource struct{}

func (s *MarkdownSource) Pages(r io.Reader, filename string) ([]outline.PageRecord, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var blocks []string
	var current strings.Builder

	flush := func() {
		if b := strings.TrimSpace(current.String()); b != "" {
			blocks = append(blocks, b)
		}
		current.Reset()
	}
	appendText := func(t string) {
		if t == "" {
			return
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(t)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			flush()
			appendText(string(h.Text(src)))
			continue
		}
		appendText(blockText(n, src))
	}
	flush()

	return fromBlocks(blocks), nil
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
