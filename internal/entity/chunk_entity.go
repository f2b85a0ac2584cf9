package entity

import (
	"time"

	"github.com/google/uuid"
)

// SparseVector is a keyword-style term-weight representation used for the
// lexical search leg. Indices are stable 31-bit term hashes, weights are
// normalized term frequencies. Indices and Weights are parallel slices.
// An empty vector is valid for text that contains no surviving tokens.
type SparseVector struct {
	Indices []uint32
	Weights []float64
}

func (v SparseVector) IsEmpty() bool {
	return len(v.Indices) == 0
}

// Chunk is one indexable segment of a knowledge base item.
// Chunks are immutable once written: edits to the source item delete the
// old chunk set by SourceItemId and insert a fresh set with new ids.
type Chunk struct {
	Id           uuid.UUID
	Tenant       TenantFilter
	SourceItemId string
	Title        string
	Type         string // "text", "faq", "page", "document", "sheet"
	Text         string
	ChunkIndex   int
	TotalChunks  int
	Sparse       SparseVector
	Dense        []float32
	CreatedAt    time.Time
}
