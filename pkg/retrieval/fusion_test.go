package retrieval

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/repository/contract"
)

func chunkWithText(text string) *entity.Chunk {
	return &entity.Chunk{
		Id:   uuid.New(),
		Text: text,
		Tenant: entity.TenantFilter{
			BusinessId: "biz-1",
			WidgetId:   "wid-1",
		},
	}
}

func TestFuseRRFSumsBothLists(t *testing.T) {
	shared := chunkWithText("appears in both lists")
	denseOnly := chunkWithText("dense only")
	sparseOnly := chunkWithText("sparse only")

	dense := []contract.ScoredChunk{
		{Chunk: shared, Score: 0.9},
		{Chunk: denseOnly, Score: 0.5},
	}
	sparse := []contract.ScoredChunk{
		{Chunk: shared, Score: 0.4},
		{Chunk: sparseOnly, Score: 0.2},
	}

	fused := FuseRRF(dense, sparse)
	assert.Len(t, fused, 3)

	// shared chunk is rank 1 in both lists: 1/61 + 1/61
	assert.Equal(t, shared.Id, fused[0].ChunkId)
	assert.InDelta(t, 2.0/61.0, fused[0].FusedScore, 1e-12)
	assert.Equal(t, 1, fused[0].DenseRank)
	assert.Equal(t, 1, fused[0].SparseRank)
	assert.Equal(t, 0.9, fused[0].RawScore())

	// single-list chunks carry exactly one reciprocal term
	for _, cand := range fused[1:] {
		assert.InDelta(t, 1.0/62.0, cand.FusedScore, 1e-12)
	}
}

func TestFuseRRFPresenceInBothBeatsSingleList(t *testing.T) {
	// A chunk ranked last in both lists still outscores a chunk ranked
	// first in only one: 1/(60+n)+1/(60+n) > 1/61 for small n.
	both := chunkWithText("both")
	only := chunkWithText("only dense")

	dense := []contract.ScoredChunk{
		{Chunk: only, Score: 0.99},
		{Chunk: both, Score: 0.1},
	}
	sparse := []contract.ScoredChunk{
		{Chunk: both, Score: 0.1},
	}

	fused := FuseRRF(dense, sparse)
	assert.Equal(t, both.Id, fused[0].ChunkId)
}

func TestFuseRRFTieBreaksOnRawScore(t *testing.T) {
	a := chunkWithText("a")
	b := chunkWithText("b")

	// Same rank in opposite lists: identical fused scores.
	dense := []contract.ScoredChunk{{Chunk: a, Score: 0.3}}
	sparse := []contract.ScoredChunk{{Chunk: b, Score: 0.7}}

	fused := FuseRRF(dense, sparse)
	assert.Len(t, fused, 2)
	assert.InDelta(t, fused[0].FusedScore, fused[1].FusedScore, 1e-12)
	assert.Equal(t, b.Id, fused[0].ChunkId, "higher raw score wins the tie")
}

func TestFuseRRFEmptyLegs(t *testing.T) {
	assert.Empty(t, FuseRRF(nil, nil))

	only := chunkWithText("survivor")
	fused := FuseRRF([]contract.ScoredChunk{{Chunk: only, Score: 0.8}}, nil)
	assert.Len(t, fused, 1)
	assert.Equal(t, 0, fused[0].SparseRank)
	assert.False(t, math.IsNaN(fused[0].FusedScore))
}
