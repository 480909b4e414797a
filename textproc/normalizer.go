package textproc

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Normalizer turns raw text into the canonical token stream used by the
// lexical indices. It is stateless apart from its stop-word table and is
// safe for concurrent use.
type Normalizer struct {
	stopWords map[string]bool
	minLength int
	maxLength int
}

// NewNormalizer creates a Normalizer with the default English stop-word
// table and token length bounds.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		stopWords: defaultStopWords(),
		minLength: 2,
		maxLength: 50,
	}
}

// Tokens normalizes text into a sequence of lower-cased, stemmed,
// stop-word-free alphabetic tokens.
func (n *Normalizer) Tokens(text string) []string {
	words := split(strings.ToLower(text))

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" || n.stopWords[word] {
			continue
		}
		if len(word) < n.minLength || len(word) > n.maxLength {
			continue
		}
		tokens = append(tokens, stem(word))
	}
	return tokens
}

// Normalize returns the normalized text as a single space-joined string.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// split breaks text into maximal runs of letters. Digits, punctuation and
// every other rune act as separators, which also strips non-alphabetic
// tokens.
func split(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// stem reduces a word to its snowball stem. On stemmer failure the word is
// kept as-is rather than dropped.
func stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

func defaultStopWords() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "him", "his", "how", "i", "if", "in",
		"into", "is", "it", "its", "just", "me", "more", "most", "my",
		"no", "nor", "not", "now", "of", "off", "on", "once", "only",
		"or", "other", "our", "ours", "out", "over", "own", "same", "she",
		"should", "so", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "then", "there", "these", "they", "this",
		"those", "through", "to", "too", "under", "until", "up", "very",
		"was", "we", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "you", "your", "yours",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
