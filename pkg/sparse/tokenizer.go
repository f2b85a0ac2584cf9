package sparse

import (
	"regexp"
	"strings"
)

// stripPattern removes everything that is not a word character,
// whitespace, or one of @ . _ - (kept so emails, URLs and file names
// survive tokenization).
var stripPattern = regexp.MustCompile(`[^\w\s@._-]`)

// stopwords is the fixed function-word set dropped before weighting.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "has": {}, "have": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {},
}

// Tokenize lowercases the text, strips special characters, splits on
// whitespace and drops single-character tokens and stopwords. An empty
// result is valid for stopword-only input.
func Tokenize(text string) []string {
	cleaned := stripPattern.ReplaceAllString(strings.ToLower(text), " ")

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, t := range fields {
		if len(t) <= 1 {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
