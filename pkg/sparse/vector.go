package sparse

import (
	"hash/fnv"
	"sort"

	"support-rag-be/internal/entity"
)

// TermHash returns a stable non-negative 31-bit index for a token.
// Collisions are acceptable: the sparse leg only needs BM-style keyword
// overlap, and the index applies its own IDF-like weighting.
func TermHash(token string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(token))
	return h.Sum32() & 0x7fffffff
}

// Build computes the term-frequency sparse vector for a text.
// weight(token) = count / totalTokens; IDF weighting is delegated to the
// index. Indices are sorted so equal input always yields equal output.
func Build(text string) entity.SparseVector {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return entity.SparseVector{}
	}

	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}

	type term struct {
		index  uint32
		weight float64
	}
	terms := make([]term, 0, len(counts))
	total := float64(len(tokens))
	for token, count := range counts {
		terms = append(terms, term{
			index:  TermHash(token),
			weight: float64(count) / total,
		})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].index < terms[j].index })

	vec := entity.SparseVector{
		Indices: make([]uint32, len(terms)),
		Weights: make([]float64, len(terms)),
	}
	for i, t := range terms {
		vec.Indices[i] = t.index
		vec.Weights[i] = t.weight
	}
	return vec
}
