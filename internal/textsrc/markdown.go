package textsrc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractMarkdown returns the prose of a Markdown document: headings,
// paragraphs and list items, one block per paragraph. Code, raw HTML and
// link destinations are skipped.
func ExtractMarkdown(content []byte) ([]string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var blocks []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			var sb strings.Builder
			inlineText(&sb, n, content)
			if block := strings.Join(strings.Fields(sb.String()), " "); block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return []string{strings.Join(blocks, "\n\n")}, nil
}

// inlineText appends the visible text of the inline children of n.
func inlineText(sb *strings.Builder, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.CodeSpan, *ast.RawHTML, *ast.AutoLink:
			continue
		default:
			inlineText(sb, c, source)
		}
	}
}
