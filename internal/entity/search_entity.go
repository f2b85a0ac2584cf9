package entity

import "github.com/google/uuid"

// ChunkRef is the chunk metadata carried through the query path. It is a
// read-only projection of the stored chunk; the query path never mutates
// chunks.
type ChunkRef struct {
	SourceItemId string
	Title        string
	Type         string
	ChunkIndex   int
	TotalChunks  int
}

// SearchCandidate is one fused retrieval result. Candidates are produced
// fresh per query and never persisted. DenseRank/SparseRank are 1-based
// ranks within each retriever's list; 0 means the retriever did not
// return the chunk.
type SearchCandidate struct {
	ChunkId     uuid.UUID
	Text        string
	Metadata    ChunkRef
	DenseRank   int
	SparseRank  int
	DenseScore  float64
	SparseScore float64
	FusedScore  float64
}

// RawScore returns the best individual similarity score across retrievers.
// Used for fused-score tie-breaking and for the rerank skip gate.
func (c SearchCandidate) RawScore() float64 {
	if c.DenseScore > c.SparseScore {
		return c.DenseScore
	}
	return c.SparseScore
}

// RerankedCandidate is a SearchCandidate with a cross-encoder relevance
// score. When reranking occurred, RelevanceScore strictly determines the
// final order; otherwise FusedScore does.
type RerankedCandidate struct {
	SearchCandidate
	RelevanceScore float64
}
