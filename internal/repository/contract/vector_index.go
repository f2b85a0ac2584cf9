package contract

import (
	"context"

	"support-rag-be/internal/entity"
)

// ScoredChunk is a chunk returned by one retriever leg with its raw
// similarity score (cosine similarity for dense, keyword overlap for
// sparse). Higher is better for both.
type ScoredChunk struct {
	Chunk *entity.Chunk
	Score float64
}

// VectorIndex is the storage engine contract for the hybrid index.
// Every read and delete is scoped by a TenantFilter; implementations
// MUST reject calls with an incomplete filter.
type VectorIndex interface {
	// EnsureCollection creates the collection if it does not exist yet.
	// Calling it for an existing collection is a no-op unless the stored
	// dimension differs, which is a *entity.DimensionMismatchError.
	EnsureCollection(ctx context.Context, name string, denseDim int) error

	// Upsert writes chunk records. Ids are always freshly generated by
	// the caller; ids are never reused across edits.
	Upsert(ctx context.Context, collection string, chunks []*entity.Chunk) error

	// SearchDense returns the top-limit chunks by dense similarity.
	SearchDense(ctx context.Context, collection string, filter entity.TenantFilter, vector []float32, limit int) ([]ScoredChunk, error)

	// SearchSparse returns the top-limit chunks by sparse keyword overlap.
	SearchSparse(ctx context.Context, collection string, filter entity.TenantFilter, vector entity.SparseVector, limit int) ([]ScoredChunk, error)

	// DeleteBySourceItem removes every chunk of one knowledge base item.
	// Returns the number of chunks removed; deleting a missing item is
	// not an error.
	DeleteBySourceItem(ctx context.Context, collection string, filter entity.TenantFilter, sourceItemId string) (int64, error)

	// DeleteByTenant wipes a business's data; widgetId may be empty to
	// wipe every widget of the business.
	DeleteByTenant(ctx context.Context, collection string, businessId, widgetId string) (int64, error)
}
