package rerank

import "strings"

// Complexity buckets queries for retrieval tuning: greetings skip
// retrieval entirely, simple queries fetch fewer candidates, complex
// queries fetch more.
type Complexity string

const (
	ComplexityGreeting Complexity = "greeting"
	ComplexitySimple   Complexity = "simple"
	ComplexityMedium   Complexity = "medium"
	ComplexityComplex  Complexity = "complex"
)

var greetings = []string{
	"hello", "hi", "hey", "good morning", "good afternoon",
	"good evening", "greetings", "howdy", "what's up", "wassup",
}

var simpleIndicators = []string{"who", "what", "when", "where", "how much", "price", "cost"}

var complexIndicators = []string{"explain", "describe", "analyze", "compare", "detailed"}

// Classify is a cheap heuristic over word count and indicator words.
// It runs on the raw user query before preprocessing.
func Classify(query string) Complexity {
	lower := strings.ToLower(strings.TrimSpace(query))

	for _, g := range greetings {
		if lower == g || strings.HasPrefix(lower, g+" ") {
			return ComplexityGreeting
		}
	}

	words := len(strings.Fields(query))
	if words <= 5 {
		for _, ind := range simpleIndicators {
			if strings.Contains(lower, ind) {
				return ComplexitySimple
			}
		}
	}

	if words > 10 {
		return ComplexityComplex
	}
	for _, ind := range complexIndicators {
		if strings.Contains(lower, ind) {
			return ComplexityComplex
		}
	}
	return ComplexityMedium
}

// CandidateMultiplier scales the requested document count into the
// candidate pool size fetched ahead of reranking.
func (c Complexity) CandidateMultiplier() int {
	if c == ComplexitySimple {
		return 2
	}
	return 3
}
