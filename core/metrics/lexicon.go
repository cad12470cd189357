package metrics

import "slices"

// commonWordList is ordered by frequency; the head of the list doubles as
// the general-vocabulary set for domain specificity.
var commonWordList = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their",
	"what", "so", "up", "out", "if", "about", "who", "get", "which", "go",
	"me", "when", "make", "can", "like", "time", "no", "just", "him", "know",
	"take", "people", "into", "year", "your", "good", "some", "could", "them",
	"see", "other", "than", "then", "now", "look", "only", "come", "its",
	"over", "think", "also", "back", "after", "use", "two", "how", "our",
	"work", "first", "well", "way", "even", "new", "want", "because", "any",
	"these", "give", "day", "most", "us",
}

const generalTermCount = 30

var (
	// commonWords drives vocabulary rarity.
	commonWords = toSet(commonWordList)

	// generalTerms drives domain specificity.
	generalTerms = toSet(commonWordList[:generalTermCount])

	// subordinators open a dependent clause and deepen the parse tree.
	subordinators = toSet([]string{
		"which", "that", "who", "whom", "whose", "because", "although",
		"when", "while", "if", "since", "unless", "whereas",
	})
)

// DefaultIdioms is the built-in idiom lexicon.
var DefaultIdioms = []string{
	"kick the bucket",
	"raining cats and dogs",
	"piece of cake",
	"let the cat out of the bag",
	"hit the nail on the head",
}

// CommonWords returns the frequency list used for vocabulary rarity.
func CommonWords() []string {
	return slices.Clone(commonWordList)
}

// IsCommonWord reports whether a case-folded word is in the common list.
func IsCommonWord(word string) bool {
	_, ok := commonWords[word]
	return ok
}

// IsGeneralTerm reports whether a case-folded word is general vocabulary.
func IsGeneralTerm(word string) bool {
	_, ok := generalTerms[word]
	return ok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
