package queryprep

import "strings"

// Expansion maps a phrase to the terms it should expand into. Expansions
// are checked in order; the first phrase contained in the query wins and
// replaces it entirely.
type Expansion struct {
	Phrase    string
	Expansion string
}

// Preprocessor normalizes a raw query before embedding: one semantic
// expansion pass followed by token-by-token typo correction. It is pure
// and deterministic; both tables are injectable so behavior is testable
// in isolation.
type Preprocessor struct {
	corrections map[string]string
	expansions  []Expansion
}

func New() *Preprocessor {
	return NewWithTables(defaultCorrections, defaultExpansions)
}

func NewWithTables(corrections map[string]string, expansions []Expansion) *Preprocessor {
	return &Preprocessor{
		corrections: corrections,
		expansions:  expansions,
	}
}

// Process lowercases the query, applies at most one semantic expansion,
// then corrects known typos word by word. Punctuation surrounding a word
// is preserved around the correction.
func (p *Preprocessor) Process(query string) string {
	expanded := strings.ToLower(query)

	for _, e := range p.expansions {
		if strings.Contains(expanded, e.Phrase) {
			expanded = e.Expansion
			break
		}
	}

	words := strings.Fields(expanded)
	corrected := make([]string, len(words))
	for i, word := range words {
		trimmed := strings.TrimLeft(word, ".,!?;:")
		lead := word[:len(word)-len(trimmed)]
		clean := strings.TrimRight(trimmed, ".,!?;:")
		if fix, ok := p.corrections[clean]; ok {
			corrected[i] = lead + fix + trimmed[len(clean):]
		} else {
			corrected[i] = word
		}
	}

	return strings.Join(corrected, " ")
}
