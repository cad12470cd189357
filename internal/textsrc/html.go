package textsrc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, figcaption, td, th, dd, dt"

// ExtractHTML returns the prose of an HTML document, one block per paragraph.
func ExtractHTML(content []byte) ([]string, error) {
	body, err := htmlText(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return []string{body}, nil
}

// HTMLToText strips markup from an HTML fragment, keeping paragraph breaks.
func HTMLToText(fragment string) (string, error) {
	return htmlText(strings.NewReader(fragment))
}

func htmlText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, template, pre, code, nav").Remove()

	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// The innermost block carries the text
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapse(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return collapse(doc.Find("body").Text()), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
