package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/memory"
	"support-rag-be/pkg/embedding"
	"support-rag-be/pkg/events"
)

type fixedProvider struct{}

func (fixedProvider) Name() string { return "voyage" }

func (fixedProvider) EmbedQuery(ctx context.Context, text, model string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (fixedProvider) EmbedDocuments(ctx context.Context, texts []string, model string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (fixedProvider) Dimension(model string) int { return 3 }

type capturingPublisher struct {
	published chan events.Event
}

func (c *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	c.published <- event
	return nil
}

func testSearchContext() entity.SearchContext {
	tenant := entity.TenantFilter{BusinessId: "biz-1", WidgetId: "wid-1"}
	return entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", tenant)
}

func TestIngestWritesChunks(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	pub := &capturingPublisher{published: make(chan events.Event, 1)}
	pipe := NewPipeline(idx, embedding.NewRegistry(fixedProvider{}), pub, logger.NewNopLogger())

	sctx := testSearchContext()
	content := strings.Repeat("Our refund policy allows returns within thirty days of purchase. ", 40)
	n, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Title: "Refunds", Type: "document", Content: content})
	require.NoError(t, err)
	assert.Greater(t, n, 1, "long content splits into multiple chunks")
	assert.Equal(t, n, idx.Count(sctx.Collection))

	ev := <-pub.published
	assert.Equal(t, events.TypeKnowledgeIngested, ev.EventType())
	assert.Equal(t, "item-1", ev.Payload()["item_id"])
}

func TestIngestRequiresTenant(t *testing.T) {
	pipe := NewPipeline(memory.NewMemoryVectorIndex(), embedding.NewRegistry(fixedProvider{}), nil, logger.NewNopLogger())

	sctx := entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", entity.TenantFilter{BusinessId: "biz-1"})
	_, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Content: "some text"})
	assert.ErrorIs(t, err, entity.ErrMissingTenantFilter)
}

func TestReingestReplacesOldChunks(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	pipe := NewPipeline(idx, embedding.NewRegistry(fixedProvider{}), nil, logger.NewNopLogger())
	sctx := testSearchContext()

	long := strings.Repeat("Original answer about shipping times and carriers. ", 60)
	nOld, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Title: "Shipping", Type: "document", Content: long})
	require.NoError(t, err)

	short := "Updated: shipping now takes two days everywhere."
	nNew, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Title: "Shipping", Type: "document", Content: short})
	require.NoError(t, err)

	assert.Equal(t, 1, nNew)
	assert.Less(t, nNew, nOld)
	assert.Equal(t, nNew, idx.Count(sctx.Collection), "no stale chunks survive a re-ingest")
}

func TestIngestEmptyContentClearsStaleChunks(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	pipe := NewPipeline(idx, embedding.NewRegistry(fixedProvider{}), nil, logger.NewNopLogger())
	sctx := testSearchContext()

	_, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Type: "text", Content: "A perfectly indexable piece of content about holiday opening hours."})
	require.NoError(t, err)
	require.Equal(t, 1, idx.Count(sctx.Collection))

	n, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Type: "text", Content: "   "})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, idx.Count(sctx.Collection))
}

func TestDeleteIsIdempotent(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	pipe := NewPipeline(idx, embedding.NewRegistry(fixedProvider{}), nil, logger.NewNopLogger())
	sctx := testSearchContext()

	_, err := pipe.Ingest(context.Background(), sctx, Item{Id: "item-1", Type: "text", Content: "Content about warranty coverage for appliances."})
	require.NoError(t, err)

	removed, err := pipe.Delete(context.Background(), sctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = pipe.Delete(context.Background(), sctx, "item-1")
	require.NoError(t, err)
	assert.Zero(t, removed, "second delete finds nothing and is not an error")
}

func TestWipeRemovesOnlyTargetBusiness(t *testing.T) {
	idx := memory.NewMemoryVectorIndex()
	pipe := NewPipeline(idx, embedding.NewRegistry(fixedProvider{}), nil, logger.NewNopLogger())

	sctxA := testSearchContext()
	tenantB := entity.TenantFilter{BusinessId: "biz-2", WidgetId: "wid-2"}
	sctxB := entity.NewSearchContext("support-kb", "voyage", "voyage-3-large", tenantB)

	_, err := pipe.Ingest(context.Background(), sctxA, Item{Id: "a-1", Type: "text", Content: "Business one content about billing."})
	require.NoError(t, err)
	_, err = pipe.Ingest(context.Background(), sctxB, Item{Id: "b-1", Type: "text", Content: "Business two content about billing."})
	require.NoError(t, err)

	removed, err := pipe.Wipe(context.Background(), sctxA.Collection, "biz-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, idx.Count(sctxA.Collection), "the other business is untouched")
}
