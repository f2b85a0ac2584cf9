package retrieval

import (
	"sort"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/repository/contract"
)

// rrfK dampens the contribution of lower ranks. 60 is the value from
// the original reciprocal rank fusion paper and works well untouched.
const rrfK = 60

// FuseRRF merges the dense and sparse result lists with reciprocal
// rank fusion: each list contributes 1/(k+rank) per chunk, ranks are
// 1-based, and a chunk present in both lists sums both terms. Ties on
// the fused score break toward the higher raw similarity.
func FuseRRF(dense, sparse []contract.ScoredChunk) []entity.SearchCandidate {
	byId := make(map[string]*entity.SearchCandidate, len(dense)+len(sparse))
	order := make([]string, 0, len(dense)+len(sparse))

	get := func(c *entity.Chunk) *entity.SearchCandidate {
		id := c.Id.String()
		if cand, ok := byId[id]; ok {
			return cand
		}
		cand := &entity.SearchCandidate{
			ChunkId: c.Id,
			Text:    c.Text,
			Metadata: entity.ChunkRef{
				SourceItemId: c.SourceItemId,
				Title:        c.Title,
				Type:         c.Type,
				ChunkIndex:   c.ChunkIndex,
				TotalChunks:  c.TotalChunks,
			},
		}
		byId[id] = cand
		order = append(order, id)
		return cand
	}

	for i, sc := range dense {
		cand := get(sc.Chunk)
		cand.DenseRank = i + 1
		cand.DenseScore = sc.Score
		cand.FusedScore += 1.0 / float64(rrfK+i+1)
	}
	for i, sc := range sparse {
		cand := get(sc.Chunk)
		cand.SparseRank = i + 1
		cand.SparseScore = sc.Score
		cand.FusedScore += 1.0 / float64(rrfK+i+1)
	}

	fused := make([]entity.SearchCandidate, 0, len(order))
	for _, id := range order {
		fused = append(fused, *byId[id])
	}
	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].FusedScore != fused[j].FusedScore {
			return fused[i].FusedScore > fused[j].FusedScore
		}
		return fused[i].RawScore() > fused[j].RawScore()
	})
	return fused
}
