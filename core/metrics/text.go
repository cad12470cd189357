// Package metrics computes the raw readability, linguistic and translation
// metrics of a text.
package metrics

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Token is one word or punctuation segment of a sentence.
type Token struct {
	Text   string // As written, NFC normalized
	Folded string // Case folded, for vocabulary lookups
	Punct  bool   // No letters or digits
}

// Sentence is a run of tokens between sentence boundaries.
type Sentence struct {
	Text   string
	Tokens []Token
}

// Words returns the non-punctuation tokens of the sentence.
func (s Sentence) Words() []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if !t.Punct {
			out = append(out, t)
		}
	}
	return out
}

// Document is a segmented text shared by the providers.
type Document struct {
	Text      string
	Sentences []Sentence
}

// NewDocument normalizes the text to NFC and segments it into sentences and
// tokens following the Unicode text segmentation rules. Whitespace-only
// segments are dropped.
func NewDocument(text string) *Document {
	text = norm.NFC.String(text)
	doc := &Document{Text: text}

	// Casers carry state, so each document gets its own.
	folder := cases.Fold()

	rest := text
	state := -1
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		tokens := tokenize(sentence, folder)
		if len(tokens) == 0 {
			continue
		}
		doc.Sentences = append(doc.Sentences, Sentence{
			Text:   strings.TrimSpace(sentence),
			Tokens: tokens,
		})
	}
	return doc
}

// Tokens returns every token of the document.
func (d *Document) Tokens() []Token {
	var out []Token
	for _, s := range d.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}

// Words returns every non-punctuation token of the document.
func (d *Document) Words() []Token {
	var out []Token
	for _, s := range d.Sentences {
		out = append(out, s.Words()...)
	}
	return out
}

// WordSentenceCount counts the sentences holding at least one word.
func (d *Document) WordSentenceCount() int {
	n := 0
	for _, s := range d.Sentences {
		for _, t := range s.Tokens {
			if !t.Punct {
				n++
				break
			}
		}
	}
	return n
}

// Fields splits the case-folded text on whitespace, keeping attached punctuation.
func (d *Document) Fields() []string {
	return strings.Fields(cases.Fold().String(d.Text))
}

func tokenize(sentence string, folder cases.Caser) []Token {
	var tokens []Token
	seg := words.FromString(sentence)
	for seg.Next() {
		text := seg.Value()
		if strings.TrimSpace(text) == "" {
			continue
		}
		tokens = append(tokens, Token{
			Text:   text,
			Folded: folder.String(text),
			Punct:  !hasLetterOrDigit(text),
		})
	}
	return tokens
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if isAlnum(r) {
			return true
		}
	}
	return false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
