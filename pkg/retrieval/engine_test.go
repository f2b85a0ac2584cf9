package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/internal/repository/memory"
	"support-rag-be/pkg/embedding"
	"support-rag-be/pkg/sparse"
)

// stubProvider returns canned vectors so similarity is controlled by the
// test, not by a real embedding backend.
type stubProvider struct {
	vectors map[string][]float32
	fail    bool
}

func (s *stubProvider) Name() string { return "voyage" }

func (s *stubProvider) EmbedQuery(ctx context.Context, text, model string) ([]float32, error) {
	if s.fail {
		return nil, embedding.ErrProviderUnavailable
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (s *stubProvider) EmbedDocuments(ctx context.Context, texts []string, model string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.EmbedQuery(ctx, t, model)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubProvider) Dimension(model string) int { return 3 }

func seedIndex(t *testing.T, idx contract.VectorIndex, tenant entity.TenantFilter, text string, dense []float32) *entity.Chunk {
	t.Helper()
	c := &entity.Chunk{
		Id:           uuid.New(),
		Tenant:       tenant,
		SourceItemId: "item-1",
		Text:         text,
		TotalChunks:  1,
		Sparse:       sparse.Build(text),
		Dense:        dense,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, idx.Upsert(context.Background(), "support-kb-voyage", []*entity.Chunk{c}))
	return c
}

func TestSearchRequiresTenantFilter(t *testing.T) {
	engine := NewEngine(memory.NewMemoryVectorIndex(), embedding.NewRegistry(&stubProvider{}), logger.NewNopLogger())

	sctx := entity.NewSearchContext("support-kb", "openai", "text-embedding-3-small", entity.TenantFilter{BusinessId: "biz-1"})
	_, err := engine.Search(context.Background(), sctx, "refund policy", 5)
	assert.ErrorIs(t, err, entity.ErrMissingTenantFilter)
}

func TestSearchEmbedFailureIsFatal(t *testing.T) {
	engine := NewEngine(memory.NewMemoryVectorIndex(), embedding.NewRegistry(&stubProvider{fail: true}), logger.NewNopLogger())

	sctx := entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", entity.TenantFilter{BusinessId: "biz-1", WidgetId: "wid-1"})
	_, err := engine.Search(context.Background(), sctx, "refund policy", 5)
	assert.ErrorIs(t, err, embedding.ErrProviderUnavailable)
}

func TestSearchTenantIsolation(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	require.NoError(t, idx.EnsureCollection(context.Background(), "support-kb-voyage", 3))

	tenantA := entity.TenantFilter{BusinessId: "biz-a", WidgetId: "wid-a"}
	tenantB := entity.TenantFilter{BusinessId: "biz-b", WidgetId: "wid-b"}
	seedIndex(t, idx, tenantA, "refund policy takes five days", []float32{1, 0, 0})
	stranger := seedIndex(t, idx, tenantB, "refund policy takes ten days", []float32{1, 0, 0})

	provider := &stubProvider{vectors: map[string][]float32{"refund policy": {1, 0, 0}}}
	engine := NewEngine(idx, embedding.NewRegistry(provider), logger.NewNopLogger())

	sctx := entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", entity.TenantFilter{BusinessId: "biz-a", WidgetId: "wid-a"})
	got, err := engine.Search(context.Background(), sctx, "refund policy", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, cand := range got {
		assert.NotEqual(t, stranger.Id, cand.ChunkId, "result from another tenant leaked through the filter")
	}
}

func TestSearchFindsByKeywordAndVector(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	require.NoError(t, idx.EnsureCollection(context.Background(), "support-kb-voyage", 3))

	tenant := entity.TenantFilter{BusinessId: "biz-a", WidgetId: "wid-a"}
	both := seedIndex(t, idx, tenant, "our refund policy explained", []float32{1, 0, 0})
	seedIndex(t, idx, tenant, "shipping times overview", []float32{0, 1, 0})

	provider := &stubProvider{vectors: map[string][]float32{"refund policy": {1, 0, 0}}}
	engine := NewEngine(idx, embedding.NewRegistry(provider), logger.NewNopLogger())

	sctx := entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", tenant)
	got, err := engine.Search(context.Background(), sctx, "refund policy", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// The chunk matched by both legs fuses to the top.
	assert.Equal(t, both.Id, got[0].ChunkId)
	assert.Positive(t, got[0].DenseRank)
	assert.Positive(t, got[0].SparseRank)
}

// failingIndex breaks one leg to exercise degradation.
type failingIndex struct {
	contract.VectorIndex
	failDense  bool
	failSparse bool
}

func (f *failingIndex) SearchDense(ctx context.Context, collection string, filter entity.TenantFilter, vector []float32, limit int) ([]contract.ScoredChunk, error) {
	if f.failDense {
		return nil, errors.New("vector backend down")
	}
	return f.VectorIndex.SearchDense(ctx, collection, filter, vector, limit)
}

func (f *failingIndex) SearchSparse(ctx context.Context, collection string, filter entity.TenantFilter, vector entity.SparseVector, limit int) ([]contract.ScoredChunk, error) {
	if f.failSparse {
		return nil, errors.New("keyword backend down")
	}
	return f.VectorIndex.SearchSparse(ctx, collection, filter, vector, limit)
}

func TestSearchDegradesToSurvivingLeg(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	require.NoError(t, idx.EnsureCollection(context.Background(), "support-kb-voyage", 3))
	tenant := entity.TenantFilter{BusinessId: "biz-a", WidgetId: "wid-a"}
	seedIndex(t, idx, tenant, "refund policy explained", []float32{1, 0, 0})

	provider := &stubProvider{vectors: map[string][]float32{"refund policy": {1, 0, 0}}}
	sctx := entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", tenant)

	t.Run("dense leg down", func(t *testing.T) {
		engine := NewEngine(&failingIndex{VectorIndex: idx, failDense: true}, embedding.NewRegistry(provider), logger.NewNopLogger())
		got, err := engine.Search(context.Background(), sctx, "refund policy", 5)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Zero(t, got[0].DenseRank)
		assert.Positive(t, got[0].SparseRank)
	})

	t.Run("sparse leg down", func(t *testing.T) {
		engine := NewEngine(&failingIndex{VectorIndex: idx, failSparse: true}, embedding.NewRegistry(provider), logger.NewNopLogger())
		got, err := engine.Search(context.Background(), sctx, "refund policy", 5)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Positive(t, got[0].DenseRank)
		assert.Zero(t, got[0].SparseRank)
	})

	t.Run("both legs down", func(t *testing.T) {
		engine := NewEngine(&failingIndex{VectorIndex: idx, failDense: true, failSparse: true}, embedding.NewRegistry(provider), logger.NewNopLogger())
		_, err := engine.Search(context.Background(), sctx, "refund policy", 5)
		assert.Error(t, err)
	})
}
