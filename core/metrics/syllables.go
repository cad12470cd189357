package metrics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountSyllables estimates the syllables of an English word.
// Digits and symbols are ignored; any word with letters has at least one syllable.
func CountSyllables(word string) int {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	w := b.String()
	if w == "" {
		return 0
	}
	if len([]rune(w)) <= 3 {
		return 1
	}

	w = trimSilentSuffix(w)
	w = strings.TrimPrefix(w, "y")

	count := 0
	run := 0
	for _, r := range w {
		if isVowel(r) {
			run++
			continue
		}
		count += (run + 1) / 2
		run = 0
	}
	count += (run + 1) / 2
	return max(count, 1)
}

// trimSilentSuffix drops a trailing "es", "ed" or "e" that is usually silent.
// A preceding "l" or vowel keeps it voiced, as in "table" or "agree".
func trimSilentSuffix(w string) string {
	switch {
	case strings.HasSuffix(w, "ed"):
		return strings.TrimSuffix(w, "ed")
	case strings.HasSuffix(w, "es") && len(w) > 2 && !voicedBefore(w[:len(w)-2]):
		return strings.TrimSuffix(w, "es")
	case strings.HasSuffix(w, "e") && !voicedBefore(w[:len(w)-1]):
		return strings.TrimSuffix(w, "e")
	}
	return w
}

func voicedBefore(stem string) bool {
	if stem == "" {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(stem)
	return last == 'l' || isVowel(last)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y',
		'à', 'á', 'â', 'ä', 'è', 'é', 'ê', 'ë', 'ì', 'í', 'î', 'ï', 'ò', 'ó', 'ô', 'ö', 'ù', 'ú', 'û', 'ü':
		return true
	}
	return false
}
